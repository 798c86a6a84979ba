package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapisly/booking-platform/internal/cache"
	"github.com/zapisly/booking-platform/internal/config"
	"github.com/zapisly/booking-platform/internal/db"
	"github.com/zapisly/booking-platform/internal/httpapi"
	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/repository"
	"github.com/zapisly/booking-platform/internal/service"
)

func main() {
	// 1. Загружаем конфиг из env.
	cfg, err := config.NewConfig()
	if err != nil {
		panic("load config: " + err.Error())
	}

	// 2. Логгер.
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.App.Env == "local" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// 3. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("init db")
	}

	// 4. Миграции моделей.
	if err := model.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	// 5. Репозитории (реализации на GORM).
	ruleRepo := repository.NewGormScheduleRuleRepository(gormDB)
	appointmentRepo := repository.NewGormAppointmentRepository(gormDB)
	specialistRepo := repository.NewGormSpecialistRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 6. Кэш правил расписания.
	ruleCache := cache.NewRuleCache(
		cfg.Cache.RulesSize,
		time.Duration(cfg.Cache.RulesTTLMin)*time.Minute,
		log,
	)

	// 7. Сервисы.
	scheduleSvc := service.NewScheduleService(ruleRepo, appointmentRepo, eventRepo, ruleCache, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, specialistRepo, serviceRepo, eventRepo, log)
	specialistSvc := service.NewSpecialistService(specialistRepo, serviceRepo, userRepo, log)

	// 8. HTTP-контроллеры и роутер.
	router := httpapi.NewRouter(
		log,
		httpapi.NewScheduleController(scheduleSvc, log),
		httpapi.NewAppointmentController(appointmentSvc, log),
		httpapi.NewSpecialistController(specialistSvc, log),
	)

	addr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("booking HTTP server listening")

	// 9. Запускаем сервер в горутине.
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http serve")
		}
	}()

	// 10. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
