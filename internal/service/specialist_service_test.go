package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/repository"
)

func newSpecialistService(t *testing.T, db *gorm.DB) *SpecialistService {
	t.Helper()

	return NewSpecialistService(
		repository.NewGormSpecialistRepository(db),
		repository.NewGormServiceRepository(db),
		repository.NewGormUserRepository(db),
		zerolog.Nop(),
	)
}

func TestSpecialistService_Register_CreateThenUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newSpecialistService(t, db)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterInput{
		UserID:    "spec-1",
		FirstName: "Анна",
		LastName:  "Иванова",
		Phone:     "+79990000000",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Status != "active" {
		t.Fatalf("status = %s, want active", created.Status)
	}

	// Повторная регистрация обновляет профиль, не затирая пустыми полями.
	updated, err := svc.Register(ctx, RegisterInput{
		UserID:   "spec-1",
		Category: "Маникюр",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if updated.Category != "Маникюр" || updated.FirstName != "Анна" {
		t.Fatalf("profile merged wrong: %+v", updated)
	}
}

func TestSpecialistService_Services(t *testing.T) {
	db := newTestDB(t)
	svc := newSpecialistService(t, db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{UserID: "spec-1", FirstName: "Анна"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Услуга несуществующего специалиста.
	if _, err := svc.AddService(ctx, ServiceInput{SpecialistID: "ghost", Name: "Стрижка"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("add for unknown specialist = %v, want ErrNotFound", err)
	}
	// Неположительная длительность.
	if _, err := svc.AddService(ctx, ServiceInput{SpecialistID: "spec-1", Name: "Стрижка", DurationMin: intPtr(0)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero duration = %v, want ErrValidation", err)
	}

	created, err := svc.AddService(ctx, ServiceInput{
		SpecialistID: "spec-1",
		Name:         "Стрижка",
		Price:        "1500",
		Currency:     "RUB",
		DurationMin:  intPtr(45),
	})
	if err != nil {
		t.Fatalf("add service: %v", err)
	}

	list, err := svc.ListServices(ctx, "spec-1")
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v, want one service %d", list, created.ID)
	}

	if err := svc.DeleteService(ctx, created.ID); err != nil {
		t.Fatalf("delete service: %v", err)
	}
	if err := svc.DeleteService(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat delete = %v, want ErrNotFound", err)
	}
}
