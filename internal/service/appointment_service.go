package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/repository"
	"github.com/zapisly/booking-platform/internal/schedule"
)

// AppointmentService — создание, отмена и перенос записей.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	specialists  repository.SpecialistRepository
	services     repository.ServiceRepository
	events       repository.EventRepository
	log          zerolog.Logger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	specialists repository.SpecialistRepository,
	services repository.ServiceRepository,
	events repository.EventRepository,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		specialists:  specialists,
		services:     services,
		events:       events,
		log:          log.With().Str("module", "appointment_service").Logger(),
	}
}

// CreateAppointmentInput — новая запись.
type CreateAppointmentInput struct {
	ClientID     string
	FirstName    string
	LastName     string
	Phone        string
	SpecialistID string
	ServiceID    *int64
	Date         string // "DD.MM.YYYY"
	Time         string // "HH:MM"
}

// Create создаёт запись. Специалист обязан быть активен; слот того же
// времени у того же специалиста не может быть занят второй активной
// записью — за это отвечает частичный уникальный индекс, нарушение
// которого возвращается как ErrSlotTaken. Так закрывается гонка двух
// одновременных бронирований, обе стороны которой видели слот свободным.
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (*model.Appointment, error) {
	if in.ClientID == "" || in.SpecialistID == "" {
		return nil, fmt.Errorf("%w: client_id and specialist_id are required", ErrValidation)
	}
	if _, err := schedule.ParseDate(in.Date); err != nil {
		return nil, err
	}
	if _, err := schedule.ParseTimeOfDay(in.Time); err != nil {
		return nil, err
	}

	specialist, err := s.specialists.GetByUserID(ctx, in.SpecialistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: specialist %s", ErrNotFound, in.SpecialistID)
		}
		return nil, err
	}
	if specialist.Status != model.SpecialistStatusActive {
		return nil, ErrSpecialistInactive
	}

	appointment := &model.Appointment{
		ClientID:           in.ClientID,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Phone:              in.Phone,
		SpecialistID:       in.SpecialistID,
		ServiceID:          in.ServiceID,
		Date:               in.Date,
		Time:               in.Time,
		SpecialistName:     specialist.FirstName,
		SpecialistLastName: specialist.LastName,
		SpecialistAddress:  specialist.Address,
		SpecialistPhone:    specialist.Phone,
		Status:             model.AppointmentStatusActive,
	}

	if in.ServiceID != nil {
		svc, err := s.services.GetByID(ctx, *in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: service %d", ErrNotFound, *in.ServiceID)
			}
			return nil, err
		}
		appointment.ServiceName = svc.Name
		appointment.ServicePrice = svc.Price
		appointment.ServiceCurrency = svc.Currency
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeAppointmentCreated, appointment,
		fmt.Sprintf("запись создана: %s", formatSlot(appointment.Date, appointment.Time)))

	s.log.Info().
		Int64("appointment_id", appointment.ID).
		Str("specialist_id", appointment.SpecialistID).
		Str("date", appointment.Date).
		Str("time", appointment.Time).
		Msg("appointment created")

	return appointment, nil
}

// Cancel помечает запись отменённой. Отменённая запись освобождает слот.
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		return appointment, nil
	}

	if err := s.appointments.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appointment.Status = model.AppointmentStatusCancelled

	s.recordEvent(ctx, model.EventTypeAppointmentCancelled, appointment,
		fmt.Sprintf("запись отменена: %s", formatSlot(appointment.Date, appointment.Time)))

	return appointment, nil
}

// RescheduleInput — перенос записи на новые дату и время.
type RescheduleInput struct {
	NewDate string
	NewTime string
}

// Reschedule переносит активную запись. Новый слот также защищён
// уникальным индексом: занятое время возвращает ErrSlotTaken.
func (s *AppointmentService) Reschedule(ctx context.Context, id int64, in RescheduleInput) (*model.Appointment, error) {
	if _, err := schedule.ParseDate(in.NewDate); err != nil {
		return nil, err
	}
	if _, err := schedule.ParseTimeOfDay(in.NewTime); err != nil {
		return nil, err
	}

	appointment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentStatusActive {
		return nil, fmt.Errorf("%w: only active appointments can be rescheduled", ErrValidation)
	}

	oldSlot := formatSlot(appointment.Date, appointment.Time)
	appointment.Date = in.NewDate
	appointment.Time = in.NewTime

	if err := s.appointments.Update(ctx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventTypeAppointmentRescheduled, appointment,
		fmt.Sprintf("запись перенесена: %s -> %s", oldSlot, formatSlot(in.NewDate, in.NewTime)))

	return appointment, nil
}

// Get возвращает запись по ID.
func (s *AppointmentService) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.get(ctx, id)
}

// ListBySpecialist возвращает записи специалиста с пагинацией.
func (s *AppointmentService) ListBySpecialist(ctx context.Context, specialistID string, limit, offset int) ([]model.Appointment, int64, error) {
	if specialistID == "" {
		return nil, 0, fmt.Errorf("%w: specialist_id is required", ErrValidation)
	}
	return s.appointments.ListBySpecialist(ctx, specialistID, limit, offset)
}

// ListByClient возвращает записи клиента с пагинацией.
func (s *AppointmentService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Appointment, int64, error) {
	if clientID == "" {
		return nil, 0, fmt.Errorf("%w: client_id is required", ErrValidation)
	}
	return s.appointments.ListByClient(ctx, clientID, limit, offset)
}

func (s *AppointmentService) get(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) recordEvent(ctx context.Context, eventType model.EventType, a *model.Appointment, details string) {
	event := &model.AppointmentEvent{
		EventType:     eventType,
		SpecialistID:  a.SpecialistID,
		AppointmentID: &a.ID,
		Details:       details,
	}
	if err := s.events.Record(ctx, event); err != nil {
		// Аудит не должен ронять основную операцию.
		s.log.Warn().Err(err).Int64("appointment_id", a.ID).Msg("record appointment event")
	}
}
