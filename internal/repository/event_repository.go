package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type EventRepository interface {
	// Записать событие аудита.
	Record(ctx context.Context, event *model.AppointmentEvent) error
	// События по записи.
	ListByAppointment(ctx context.Context, appointmentID int64) ([]model.AppointmentEvent, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Record(ctx context.Context, event *model.AppointmentEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]model.AppointmentEvent, error) {
	var events []model.AppointmentEvent
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
