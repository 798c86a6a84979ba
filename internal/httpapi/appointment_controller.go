package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/service"
)

// AppointmentController — ручки записей.
type AppointmentController struct {
	appointments *service.AppointmentService
	log          zerolog.Logger
}

func NewAppointmentController(appointments *service.AppointmentService, log zerolog.Logger) *AppointmentController {
	return &AppointmentController{appointments: appointments, log: log}
}

func (c *AppointmentController) RegisterRoutes(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.POST("", c.create)
		appointments.GET("/:appointmentId", c.get)
		appointments.POST("/:appointmentId/cancel", c.cancel)
		appointments.POST("/:appointmentId/reschedule", c.reschedule)
		appointments.GET("/specialist/:specialistId", c.listBySpecialist)
		appointments.GET("/client/:clientId", c.listByClient)
	}
}

type createAppointmentRequest struct {
	ClientID     string `json:"client_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	SpecialistID string `json:"specialist_id"`
	ServiceID    *int64 `json:"service_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

func (c *AppointmentController) create(ctx *gin.Context) {
	var req createAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.appointments.Create(ctx.Request.Context(), service.CreateAppointmentInput{
		ClientID:     req.ClientID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		SpecialistID: req.SpecialistID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, appointmentResponse(appointment))
}

func (c *AppointmentController) get(ctx *gin.Context) {
	id, ok := pathID(ctx, "appointmentId")
	if !ok {
		return
	}
	appointment, err := c.appointments.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appointmentResponse(appointment))
}

func (c *AppointmentController) cancel(ctx *gin.Context) {
	id, ok := pathID(ctx, "appointmentId")
	if !ok {
		return
	}
	appointment, err := c.appointments.Cancel(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appointmentResponse(appointment))
}

type rescheduleRequest struct {
	NewDate string `json:"new_date"`
	NewTime string `json:"new_time"`
}

func (c *AppointmentController) reschedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "appointmentId")
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.appointments.Reschedule(ctx.Request.Context(), id, service.RescheduleInput{
		NewDate: req.NewDate,
		NewTime: req.NewTime,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, appointmentResponse(appointment))
}

func (c *AppointmentController) listBySpecialist(ctx *gin.Context) {
	page, pageSize, limit, offset := pageParams(ctx.Query("page"), ctx.Query("page_size"))

	appointments, total, err := c.appointments.ListBySpecialist(
		ctx.Request.Context(), ctx.Param("specialistId"), limit, offset)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewPage(appointmentResponses(appointments), page, pageSize, total))
}

func (c *AppointmentController) listByClient(ctx *gin.Context) {
	page, pageSize, limit, offset := pageParams(ctx.Query("page"), ctx.Query("page_size"))

	appointments, total, err := c.appointments.ListByClient(
		ctx.Request.Context(), ctx.Param("clientId"), limit, offset)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewPage(appointmentResponses(appointments), page, pageSize, total))
}

func appointmentResponse(a *model.Appointment) gin.H {
	return gin.H{
		"id":                   a.ID,
		"client_id":            a.ClientID,
		"first_name":           a.FirstName,
		"last_name":            a.LastName,
		"phone":                a.Phone,
		"specialist_id":        a.SpecialistID,
		"service_id":           a.ServiceID,
		"service_name":         a.ServiceName,
		"service_price":        a.ServicePrice,
		"service_valuta":       a.ServiceCurrency,
		"date":                 a.Date,
		"time":                 a.Time,
		"specialist_name":      a.SpecialistName,
		"specialist_last_name": a.SpecialistLastName,
		"specialist_address":   a.SpecialistAddress,
		"specialist_phone":     a.SpecialistPhone,
		"status":               a.Status,
		"created_at":           a.CreatedAt,
	}
}

func appointmentResponses(appointments []model.Appointment) []gin.H {
	out := make([]gin.H, 0, len(appointments))
	for i := range appointments {
		out = append(out, appointmentResponse(&appointments[i]))
	}
	return out
}
