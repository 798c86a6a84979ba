package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zapisly/booking-platform/internal/config"
)

// NewGormDB открывает соединение с Postgres и настраивает пул.
//
// TranslateError обязателен: сервис записей различает занятый слот по
// gorm.ErrDuplicatedKey от частичного уникального индекса, без
// трансляции ошибка драйвера прошла бы мимо этой проверки.
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		// Метки времени пишем в UTC; настенные дата и время записи
		// хранятся строками и через NowFunc не проходят.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := tunePool(gdb, cfg); err != nil {
		return nil, err
	}
	return gdb, nil
}

func tunePool(gdb *gorm.DB, cfg *config.DBConfig) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeTime) * time.Minute)
	}
	return nil
}
