package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type ServiceRepository interface {
	// Найти услугу по ID.
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	// Услуги специалиста.
	ListBySpecialist(ctx context.Context, specialistID string) ([]model.Service, error)
	// Создать услугу.
	Create(ctx context.Context, service *model.Service) error
	// Обновить услугу.
	Update(ctx context.Context, service *model.Service) error
	// Удалить услугу.
	Delete(ctx context.Context, id int64) error
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormServiceRepository) ListBySpecialist(ctx context.Context, specialistID string) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).
		Where("specialist_id = ?", specialistID).
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *GormServiceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *GormServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id).Error
}
