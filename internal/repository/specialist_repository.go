package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type SpecialistRepository interface {
	// Найти специалиста по внешнему идентификатору (Telegram ID).
	GetByUserID(ctx context.Context, userID string) (*model.Specialist, error)
	// Список специалистов с пагинацией.
	List(ctx context.Context, limit, offset int) ([]model.Specialist, int64, error)
	// Создать профиль специалиста.
	Create(ctx context.Context, specialist *model.Specialist) error
	// Обновить профиль специалиста.
	Update(ctx context.Context, specialist *model.Specialist) error
}

type GormSpecialistRepository struct {
	db *gorm.DB
}

func NewGormSpecialistRepository(db *gorm.DB) *GormSpecialistRepository {
	return &GormSpecialistRepository{db: db}
}

func (r *GormSpecialistRepository) GetByUserID(ctx context.Context, userID string) (*model.Specialist, error) {
	var s model.Specialist
	if err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSpecialistRepository) List(ctx context.Context, limit, offset int) ([]model.Specialist, int64, error) {
	var (
		specialists []model.Specialist
		total       int64
	)

	q := r.db.WithContext(ctx).Model(&model.Specialist{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("created_at DESC").Find(&specialists).Error; err != nil {
		return nil, 0, err
	}

	return specialists, total, nil
}

func (r *GormSpecialistRepository) Create(ctx context.Context, specialist *model.Specialist) error {
	return r.db.WithContext(ctx).Create(specialist).Error
}

func (r *GormSpecialistRepository) Update(ctx context.Context, specialist *model.Specialist) error {
	return r.db.WithContext(ctx).Save(specialist).Error
}
