package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type AppointmentRepository interface {
	// Создать запись. Нарушение уникального индекса активного слота
	// приходит как gorm.ErrDuplicatedKey.
	Create(ctx context.Context, appointment *model.Appointment) error
	// Найти запись по ID.
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	// Активные записи специалиста на дату, с услугами для длительности.
	ListActiveBySpecialistAndDate(ctx context.Context, specialistID, date string) ([]model.Appointment, error)
	// Все записи специалиста.
	ListBySpecialist(ctx context.Context, specialistID string, limit, offset int) ([]model.Appointment, int64, error)
	// Все записи клиента.
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Appointment, int64, error)
	// Сохранить изменённую запись (перенос).
	Update(ctx context.Context, appointment *model.Appointment) error
	// Обновить статус записи (отмена).
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
}

// Реализация на GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAppointmentRepository) ListActiveBySpecialistAndDate(
	ctx context.Context,
	specialistID, date string,
) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("specialist_id = ?", specialistID).
		Where("date = ?", date).
		Where("status = ?", model.AppointmentStatusActive).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *GormAppointmentRepository) ListBySpecialist(
	ctx context.Context,
	specialistID string,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	return r.list(ctx, "specialist_id = ?", specialistID, limit, offset)
}

func (r *GormAppointmentRepository) ListByClient(
	ctx context.Context,
	clientID string,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	return r.list(ctx, "client_id = ?", clientID, limit, offset)
}

func (r *GormAppointmentRepository) list(
	ctx context.Context,
	cond string, arg any,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	var (
		appointments []model.Appointment
		total        int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where(cond, arg)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (r *GormAppointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *GormAppointmentRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status model.AppointmentStatus,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
