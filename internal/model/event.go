package model

import "time"

// Тип события аудита.
type EventType string

const (
	EventTypeAppointmentCreated     EventType = "appointment_created"
	EventTypeAppointmentCancelled   EventType = "appointment_cancelled"
	EventTypeAppointmentRescheduled EventType = "appointment_rescheduled"
	EventTypeScheduleRuleChanged    EventType = "schedule_rule_changed"
)

// appointment_events — события аудита по записям и графику.
type AppointmentEvent struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	SpecialistID  string `gorm:"type:varchar(64);index"`
	AppointmentID *int64 `gorm:"index"`

	Details string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
