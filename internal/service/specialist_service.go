package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/repository"
)

// SpecialistService — профили специалистов и их услуги.
type SpecialistService struct {
	specialists repository.SpecialistRepository
	services    repository.ServiceRepository
	users       repository.UserRepository
	log         zerolog.Logger
}

func NewSpecialistService(
	specialists repository.SpecialistRepository,
	services repository.ServiceRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *SpecialistService {
	return &SpecialistService{
		specialists: specialists,
		services:    services,
		users:       users,
		log:         log.With().Str("module", "specialist_service").Logger(),
	}
}

// RegisterInput — регистрация или обновление профиля специалиста.
type RegisterInput struct {
	UserID       string
	ChatID       string
	FirstName    string
	LastName     string
	Username     string
	Phone        string
	Category     string
	Description  string
	Address      string
	TelegramLink string
}

// Register создаёт профиль специалиста (и пользователя, если его ещё
// нет) либо обновляет существующий.
func (s *SpecialistService) Register(ctx context.Context, in RegisterInput) (*model.Specialist, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	if _, err := s.users.Upsert(ctx, in.UserID, in.FirstName, in.LastName, in.Username, in.Phone); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	specialist, err := s.specialists.GetByUserID(ctx, in.UserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		specialist = &model.Specialist{
			UserID:       in.UserID,
			ChatID:       in.ChatID,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Username:     in.Username,
			Phone:        in.Phone,
			Category:     in.Category,
			Description:  in.Description,
			Address:      in.Address,
			TelegramLink: in.TelegramLink,
			Status:       model.SpecialistStatusActive,
		}
		if err := s.specialists.Create(ctx, specialist); err != nil {
			return nil, fmt.Errorf("create specialist: %w", err)
		}
		s.log.Info().Str("user_id", in.UserID).Msg("specialist registered")
		return specialist, nil
	case err != nil:
		return nil, err
	}

	applyProfile(specialist, in)
	if err := s.specialists.Update(ctx, specialist); err != nil {
		return nil, fmt.Errorf("update specialist: %w", err)
	}
	return specialist, nil
}

// Get возвращает специалиста по внешнему идентификатору.
func (s *SpecialistService) Get(ctx context.Context, userID string) (*model.Specialist, error) {
	specialist, err := s.specialists.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return specialist, nil
}

// List возвращает специалистов с пагинацией.
func (s *SpecialistService) List(ctx context.Context, limit, offset int) ([]model.Specialist, int64, error) {
	return s.specialists.List(ctx, limit, offset)
}

// ServiceInput — услуга специалиста.
type ServiceInput struct {
	SpecialistID string
	Name         string
	Description  string
	Price        string
	Currency     string
	DurationMin  *int
}

// AddService создаёт услугу специалиста.
func (s *SpecialistService) AddService(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if in.SpecialistID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: specialist_id and name are required", ErrValidation)
	}
	if in.DurationMin != nil && *in.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if _, err := s.Get(ctx, in.SpecialistID); err != nil {
		return nil, err
	}

	svc := &model.Service{
		SpecialistID: in.SpecialistID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Currency:     in.Currency,
		DurationMin:  in.DurationMin,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

// ListServices возвращает услуги специалиста.
func (s *SpecialistService) ListServices(ctx context.Context, specialistID string) ([]model.Service, error) {
	if specialistID == "" {
		return nil, fmt.Errorf("%w: specialist_id is required", ErrValidation)
	}
	return s.services.ListBySpecialist(ctx, specialistID)
}

// DeleteService удаляет услугу.
func (s *SpecialistService) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.services.Delete(ctx, id)
}

func applyProfile(specialist *model.Specialist, in RegisterInput) {
	if in.ChatID != "" {
		specialist.ChatID = in.ChatID
	}
	if in.FirstName != "" {
		specialist.FirstName = in.FirstName
	}
	if in.LastName != "" {
		specialist.LastName = in.LastName
	}
	if in.Username != "" {
		specialist.Username = in.Username
	}
	if in.Phone != "" {
		specialist.Phone = in.Phone
	}
	if in.Category != "" {
		specialist.Category = in.Category
	}
	if in.Description != "" {
		specialist.Description = in.Description
	}
	if in.Address != "" {
		specialist.Address = in.Address
	}
	if in.TelegramLink != "" {
		specialist.TelegramLink = in.TelegramLink
	}
}
