package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/repository"
)

func newAppointmentService(t *testing.T, db *gorm.DB) *AppointmentService {
	t.Helper()

	return NewAppointmentService(
		repository.NewGormAppointmentRepository(db),
		repository.NewGormSpecialistRepository(db),
		repository.NewGormServiceRepository(db),
		repository.NewGormEventRepository(db),
		zerolog.Nop(),
	)
}

func seedSpecialist(t *testing.T, db *gorm.DB, userID string, status model.SpecialistStatus) {
	t.Helper()

	err := repository.NewGormSpecialistRepository(db).Create(context.Background(), &model.Specialist{
		UserID:    userID,
		FirstName: "Анна",
		LastName:  "Иванова",
		Status:    status,
	})
	if err != nil {
		t.Fatalf("seed specialist: %v", err)
	}
}

func TestAppointmentService_Create_DoubleBookingRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusActive)

	in := CreateAppointmentInput{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		Date:         testDate,
		Time:         "10:00",
	}
	first, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Status != model.AppointmentStatusActive {
		t.Fatalf("status = %s, want active", first.Status)
	}

	// Второй клиент успел увидеть слот свободным, но вставка упирается
	// в уникальный индекс.
	in.ClientID = "client-2"
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second create = %v, want ErrSlotTaken", err)
	}

	// Другое время того же дня — свободно.
	in.Time = "11:00"
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("create on free slot: %v", err)
	}
}

func TestAppointmentService_Create_CancelledSlotIsFree(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusActive)

	in := CreateAppointmentInput{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		Date:         testDate,
		Time:         "10:00",
	}
	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Cancel(ctx, created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// Повторная отмена — no-op.
	cancelled, err := svc.Cancel(ctx, created.ID)
	if err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	if cancelled.Status != model.AppointmentStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	// Отменённая запись не держит слот.
	in.ClientID = "client-2"
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("create after cancel: %v", err)
	}
}

func TestAppointmentService_Create_InactiveSpecialist(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusBlocked)

	_, err := svc.Create(ctx, CreateAppointmentInput{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		Date:         testDate,
		Time:         "10:00",
	})
	if !errors.Is(err, ErrSpecialistInactive) {
		t.Fatalf("create = %v, want ErrSpecialistInactive", err)
	}
}

func TestAppointmentService_Create_DenormalizesServiceFields(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusActive)

	haircut := &model.Service{
		SpecialistID: "spec-1",
		Name:         "Стрижка",
		Price:        "1500",
		Currency:     "RUB",
		DurationMin:  intPtr(45),
	}
	if err := repository.NewGormServiceRepository(db).Create(ctx, haircut); err != nil {
		t.Fatalf("seed service: %v", err)
	}

	created, err := svc.Create(ctx, CreateAppointmentInput{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		ServiceID:    &haircut.ID,
		Date:         testDate,
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ServiceName != "Стрижка" || created.ServicePrice != "1500" || created.ServiceCurrency != "RUB" {
		t.Fatalf("service fields not denormalized: %+v", created)
	}
	if created.SpecialistName != "Анна" || created.SpecialistLastName != "Иванова" {
		t.Fatalf("specialist fields not denormalized: %+v", created)
	}
}

func TestAppointmentService_Reschedule(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusActive)

	first, err := svc.Create(ctx, CreateAppointmentInput{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		Date:         testDate,
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, CreateAppointmentInput{
		ClientID:     "client-2",
		SpecialistID: "spec-1",
		Date:         testDate,
		Time:         "11:00",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// Перенос на занятый слот запрещён.
	_, err = svc.Reschedule(ctx, second.ID, RescheduleInput{NewDate: testDate, NewTime: "10:00"})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("reschedule onto taken slot = %v, want ErrSlotTaken", err)
	}

	// Перенос на свободный — успешен.
	moved, err := svc.Reschedule(ctx, second.ID, RescheduleInput{NewDate: testDate, NewTime: "12:00"})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Time != "12:00" {
		t.Fatalf("time = %s, want 12:00", moved.Time)
	}

	// Отменённую запись переносить нельзя.
	if _, err := svc.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Reschedule(ctx, first.ID, RescheduleInput{NewDate: testDate, NewTime: "13:00"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("reschedule cancelled = %v, want ErrValidation", err)
	}
}

func TestAppointmentService_GetAndList(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(t, db)
	ctx := context.Background()
	seedSpecialist(t, db, "spec-1", model.SpecialistStatusActive)

	if _, err := svc.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}

	for _, tm := range []string{"09:00", "10:00", "11:00"} {
		if _, err := svc.Create(ctx, CreateAppointmentInput{
			ClientID:     "client-1",
			SpecialistID: "spec-1",
			Date:         testDate,
			Time:         tm,
		}); err != nil {
			t.Fatalf("create %s: %v", tm, err)
		}
	}

	items, total, err := svc.ListBySpecialist(ctx, "spec-1", 2, 0)
	if err != nil {
		t.Fatalf("list by specialist: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("total = %d, items = %d, want 3 and 2", total, len(items))
	}

	items, total, err = svc.ListByClient(ctx, "client-1", 10, 0)
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("total = %d, items = %d, want 3 and 3", total, len(items))
	}
}
