package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type ScheduleRuleRepository interface {
	// Найти правило по ID.
	GetByID(ctx context.Context, id int64) (*model.ScheduleRule, error)
	// Все правила специалиста; kind == "" — любого вида.
	ListBySpecialist(ctx context.Context, specialistID string, kind model.ScheduleRuleKind) ([]model.ScheduleRule, error)
	// Есть ли правило того же вида на ту же область действия.
	// excludeID > 0 исключает само обновляемое правило.
	ExistsForScope(
		ctx context.Context,
		specialistID string,
		kind model.ScheduleRuleKind,
		dayOfWeek *int,
		specificDate *string,
		excludeID int64,
	) (bool, error)
	// Создать правило.
	Create(ctx context.Context, rule *model.ScheduleRule) error
	// Обновить правило.
	Update(ctx context.Context, rule *model.ScheduleRule) error
	// Удалить правило.
	Delete(ctx context.Context, id int64) error
}

// Реализация на GORM.
type GormScheduleRuleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRuleRepository(db *gorm.DB) *GormScheduleRuleRepository {
	return &GormScheduleRuleRepository{db: db}
}

func (r *GormScheduleRuleRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleRule, error) {
	var rule model.ScheduleRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormScheduleRuleRepository) ListBySpecialist(
	ctx context.Context,
	specialistID string,
	kind model.ScheduleRuleKind,
) ([]model.ScheduleRule, error) {
	var rules []model.ScheduleRule
	q := r.db.WithContext(ctx).
		Where("specialist_id = ?", specialistID)

	if kind != "" {
		q = q.Where("grafik_type = ?", kind)
	}

	// Порядок по id фиксирует, какое из дублирующихся правил выиграет
	// при резолве.
	if err := q.Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormScheduleRuleRepository) ExistsForScope(
	ctx context.Context,
	specialistID string,
	kind model.ScheduleRuleKind,
	dayOfWeek *int,
	specificDate *string,
	excludeID int64,
) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.ScheduleRule{}).
		Where("specialist_id = ?", specialistID).
		Where("grafik_type = ?", kind)

	if specificDate != nil {
		q = q.Where("specific_date = ?", *specificDate)
	} else {
		q = q.Where("specific_date IS NULL AND day_of_week = ?", dayOfWeek)
	}

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormScheduleRuleRepository) Create(ctx context.Context, rule *model.ScheduleRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *GormScheduleRuleRepository) Update(ctx context.Context, rule *model.ScheduleRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *GormScheduleRuleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ScheduleRule{}, "id = ?", id).Error
}
