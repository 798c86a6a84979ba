package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/service"
)

// SpecialistController — профили специалистов и их услуги.
type SpecialistController struct {
	specialists *service.SpecialistService
	log         zerolog.Logger
}

func NewSpecialistController(specialists *service.SpecialistService, log zerolog.Logger) *SpecialistController {
	return &SpecialistController{specialists: specialists, log: log}
}

func (c *SpecialistController) RegisterRoutes(api *gin.RouterGroup) {
	specialists := api.Group("/specialists")
	{
		specialists.POST("", c.register)
		specialists.GET("", c.list)
		specialists.GET("/:specialistId", c.get)
		specialists.GET("/:specialistId/services", c.listServices)
		specialists.POST("/:specialistId/services", c.addService)
	}
	api.DELETE("/services/:serviceId", c.deleteService)
}

type registerSpecialistRequest struct {
	UserID       string `json:"user_id"`
	ChatID       string `json:"chat_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	TelegramLink string `json:"telegram_link"`
}

func (c *SpecialistController) register(ctx *gin.Context) {
	var req registerSpecialistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specialist, err := c.specialists.Register(ctx.Request.Context(), service.RegisterInput{
		UserID:       req.UserID,
		ChatID:       req.ChatID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Phone:        req.Phone,
		Category:     req.Category,
		Description:  req.Description,
		Address:      req.Address,
		TelegramLink: req.TelegramLink,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, specialistResponse(specialist))
}

func (c *SpecialistController) get(ctx *gin.Context) {
	specialist, err := c.specialists.Get(ctx.Request.Context(), ctx.Param("specialistId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, specialistResponse(specialist))
}

func (c *SpecialistController) list(ctx *gin.Context) {
	page, pageSize, limit, offset := pageParams(ctx.Query("page"), ctx.Query("page_size"))

	specialists, total, err := c.specialists.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		respondError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(specialists))
	for i := range specialists {
		items = append(items, specialistResponse(&specialists[i]))
	}
	ctx.JSON(http.StatusOK, NewPage(items, page, pageSize, total))
}

type serviceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"valuta"`
	DurationMin *int   `json:"duration"`
}

func (c *SpecialistController) addService(ctx *gin.Context) {
	var req serviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := c.specialists.AddService(ctx.Request.Context(), service.ServiceInput{
		SpecialistID: ctx.Param("specialistId"),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     req.Currency,
		DurationMin:  req.DurationMin,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, serviceResponse(svc))
}

func (c *SpecialistController) listServices(ctx *gin.Context) {
	services, err := c.specialists.ListServices(ctx.Request.Context(), ctx.Param("specialistId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]gin.H, 0, len(services))
	for i := range services {
		out = append(out, serviceResponse(&services[i]))
	}
	ctx.JSON(http.StatusOK, out)
}

func (c *SpecialistController) deleteService(ctx *gin.Context) {
	id, ok := pathID(ctx, "serviceId")
	if !ok {
		return
	}
	if err := c.specialists.DeleteService(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func specialistResponse(s *model.Specialist) gin.H {
	return gin.H{
		"user_id":       s.UserID,
		"first_name":    s.FirstName,
		"last_name":     s.LastName,
		"username":      s.Username,
		"phone":         s.Phone,
		"category":      s.Category,
		"description":   s.Description,
		"address":       s.Address,
		"telegram_link": s.TelegramLink,
		"status":        s.Status,
	}
}

func serviceResponse(s *model.Service) gin.H {
	return gin.H{
		"id":            s.ID,
		"specialist_id": s.SpecialistID,
		"name":          s.Name,
		"description":   s.Description,
		"price":         s.Price,
		"valuta":        s.Currency,
		"duration":      s.DurationMin,
	}
}
