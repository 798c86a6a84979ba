package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/service"
)

// ScheduleController — ручки графика: свободные слоты и CRUD правил.
type ScheduleController struct {
	schedule *service.ScheduleService
	log      zerolog.Logger
}

func NewScheduleController(schedule *service.ScheduleService, log zerolog.Logger) *ScheduleController {
	return &ScheduleController{schedule: schedule, log: log}
}

func (c *ScheduleController) RegisterRoutes(api *gin.RouterGroup) {
	grafik := api.Group("/grafik")
	{
		grafik.GET("/available-slots", c.availableSlots)
		grafik.GET("/specialist/:specialistId", c.listRules)
		grafik.GET("/:grafikId", c.getRule)
		grafik.POST("/work-schedule", c.createWorkSchedule)
		grafik.POST("/available-slots", c.createAvailableSlots)
		grafik.PUT("/work-schedule/:grafikId", c.updateWorkSchedule)
		grafik.PUT("/available-slots/:grafikId", c.updateAvailableSlots)
		grafik.DELETE("/:grafikId", c.deleteRule)
	}
}

// GET /grafik/available-slots?specialist_id=&date=DD.MM.YYYY&day_of_week=&service_duration=
func (c *ScheduleController) availableSlots(ctx *gin.Context) {
	specialistID := ctx.Query("specialist_id")
	date := ctx.Query("date")

	dayOfWeek, ok := optionalIntQuery(ctx, "day_of_week")
	if !ok {
		return
	}
	serviceDuration, ok := optionalIntQuery(ctx, "service_duration")
	if !ok {
		return
	}

	slots, err := c.schedule.AvailableSlots(ctx.Request.Context(), specialistID, date, dayOfWeek, serviceDuration)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	ctx.JSON(http.StatusOK, slots)
}

type workScheduleRequest struct {
	SpecialistID string  `json:"specialist_id"`
	DayOfWeek    *int    `json:"day_of_week"`
	SpecificDate *string `json:"specific_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Name         string  `json:"grafik_name"`
}

func (r workScheduleRequest) toInput() service.WorkScheduleInput {
	return service.WorkScheduleInput{
		SpecialistID: r.SpecialistID,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: r.SpecificDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Name:         r.Name,
	}
}

type availableSlotsRequest struct {
	SpecialistID string   `json:"specialist_id"`
	DayOfWeek    *int     `json:"day_of_week"`
	SpecificDate *string  `json:"specific_date"`
	TimeSlots    []string `json:"time_slots"`
	Name         string   `json:"grafik_name"`
}

func (r availableSlotsRequest) toInput() service.AvailableSlotsInput {
	return service.AvailableSlotsInput{
		SpecialistID: r.SpecialistID,
		DayOfWeek:    r.DayOfWeek,
		SpecificDate: r.SpecificDate,
		TimeSlots:    r.TimeSlots,
		Name:         r.Name,
	}
}

func (c *ScheduleController) createWorkSchedule(ctx *gin.Context) {
	var req workScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := c.schedule.CreateWorkSchedule(ctx.Request.Context(), req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ruleResponse(rule))
}

func (c *ScheduleController) createAvailableSlots(ctx *gin.Context) {
	var req availableSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := c.schedule.CreateAvailableSlots(ctx.Request.Context(), req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ruleResponse(rule))
}

func (c *ScheduleController) updateWorkSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "grafikId")
	if !ok {
		return
	}
	var req workScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := c.schedule.UpdateWorkSchedule(ctx.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ruleResponse(rule))
}

func (c *ScheduleController) updateAvailableSlots(ctx *gin.Context) {
	id, ok := pathID(ctx, "grafikId")
	if !ok {
		return
	}
	var req availableSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := c.schedule.UpdateAvailableSlots(ctx.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ruleResponse(rule))
}

func (c *ScheduleController) deleteRule(ctx *gin.Context) {
	id, ok := pathID(ctx, "grafikId")
	if !ok {
		return
	}
	if err := c.schedule.DeleteRule(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ScheduleController) getRule(ctx *gin.Context) {
	id, ok := pathID(ctx, "grafikId")
	if !ok {
		return
	}
	rule, err := c.schedule.GetRule(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ruleResponse(rule))
}

// GET /grafik/specialist/:specialistId?grafik_type=
func (c *ScheduleController) listRules(ctx *gin.Context) {
	kind := model.ScheduleRuleKind(ctx.Query("grafik_type"))

	rules, err := c.schedule.ListRules(ctx.Request.Context(), ctx.Param("specialistId"), kind)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]gin.H, 0, len(rules))
	for i := range rules {
		out = append(out, ruleResponse(&rules[i]))
	}
	ctx.JSON(http.StatusOK, out)
}

func ruleResponse(rule *model.ScheduleRule) gin.H {
	resp := gin.H{
		"id":            rule.ID,
		"specialist_id": rule.SpecialistID,
		"grafik_type":   rule.Kind,
		"grafik_name":   rule.Name,
		"day_of_week":   rule.DayOfWeek,
		"specific_date": rule.SpecificDate,
	}
	switch rule.Kind {
	case model.RuleKindWorkSchedule:
		resp["start_time"] = rule.StartTime
		resp["end_time"] = rule.EndTime
	case model.RuleKindAvailableSlots:
		slots, err := rule.SlotList()
		if err == nil {
			resp["time_slots"] = slots
		}
	}
	return resp
}

// optionalIntQuery разбирает необязательный числовой query-параметр;
// при мусоре отвечает 400 и возвращает ok=false.
func optionalIntQuery(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
