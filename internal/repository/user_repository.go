package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
)

type UserRepository interface {
	// Найти пользователя по Telegram ID.
	FindByTelegramID(ctx context.Context, telegramID string) (*model.User, error)
	// Создать пользователя или обновить контактные данные существующего.
	Upsert(ctx context.Context, telegramID, firstName, lastName, username, phone string) (*model.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "telegram_id = ?", telegramID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Upsert(
	ctx context.Context,
	telegramID, firstName, lastName, username, phone string,
) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "telegram_id = ?", telegramID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = model.User{
			TelegramID: telegramID,
			FirstName:  firstName,
			LastName:   lastName,
			Username:   username,
			Phone:      phone,
		}
		if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	case err != nil:
		return nil, err
	}

	// Пустые значения не затирают уже сохранённые контакты.
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if username != "" {
		u.Username = username
	}
	if phone != "" {
		u.Phone = phone
	}
	if err := r.db.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
