package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter собирает gin-роутер со всеми контроллерами и middleware.
func NewRouter(
	log zerolog.Logger,
	scheduleCtrl *ScheduleController,
	appointmentCtrl *AppointmentController,
	specialistCtrl *SpecialistController,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	scheduleCtrl.RegisterRoutes(api)
	appointmentCtrl.RegisterRoutes(api)
	specialistCtrl.RegisterRoutes(api)

	return router
}
