package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Вид правила графика.
type ScheduleRuleKind string

const (
	// RuleKindWorkSchedule — рабочий интервал start_time..end_time.
	RuleKindWorkSchedule ScheduleRuleKind = "work_schedule"
	// RuleKindAvailableSlots — готовый список времён начала.
	RuleKindAvailableSlots ScheduleRuleKind = "available_slots"
)

// schedule_rules — одно правило доступности специалиста.
//
// Область действия: либо DayOfWeek (1=понедельник .. 7=воскресенье),
// либо SpecificDate ("DD.MM.YYYY"). Ровно одно из двух; за инвариант
// отвечает сервисный слой при создании и обновлении.
type ScheduleRule struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	SpecialistID string `gorm:"type:varchar(64);not null;index:idx_schedule_rules_specialist"`

	DayOfWeek    *int    `gorm:"type:smallint"`
	SpecificDate *string `gorm:"type:varchar(10)"`

	Kind ScheduleRuleKind `gorm:"column:grafik_type;type:varchar(32);not null;default:'work_schedule'"`

	// Для RuleKindWorkSchedule, строки "HH:MM".
	StartTime *string `gorm:"type:varchar(5)"`
	EndTime   *string `gorm:"type:varchar(5)"`

	// Для RuleKindAvailableSlots: JSON-массив строк "HH:MM" по возрастанию.
	TimeSlots datatypes.JSON `gorm:"type:json"`

	Name string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Specialist *Specialist `gorm:"foreignKey:SpecialistID;references:UserID"`
}

// SlotList распаковывает TimeSlots в список строк "HH:MM".
func (r *ScheduleRule) SlotList() ([]string, error) {
	if len(r.TimeSlots) == 0 {
		return nil, nil
	}
	var slots []string
	if err := json.Unmarshal(r.TimeSlots, &slots); err != nil {
		return nil, fmt.Errorf("unmarshal time_slots of rule %d: %w", r.ID, err)
	}
	return slots, nil
}

// SetSlotList упаковывает список строк "HH:MM" в TimeSlots.
func (r *ScheduleRule) SetSlotList(slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal time_slots: %w", err)
	}
	r.TimeSlots = datatypes.JSON(raw)
	return nil
}
