package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusActive      AppointmentStatus = "active"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// appointments — подтверждённая запись клиента к специалисту.
//
// Дата и время хранятся строками "DD.MM.YYYY" и "HH:MM" в настенных
// часах специалиста. Частичный уникальный индекс по
// (specialist_id, date, time) для status='active' создаётся в Migrate и
// закрывает гонку двойного бронирования.
type Appointment struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	ClientID  string `gorm:"type:varchar(64);not null;index"`
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(32)"`

	SpecialistID string `gorm:"type:varchar(64);not null;index:idx_appointments_specialist_date,priority:1"`
	ServiceID    *int64 `gorm:"index"`

	Date string `gorm:"type:varchar(10);not null;index:idx_appointments_specialist_date,priority:2"`
	Time string `gorm:"type:varchar(5);not null"`

	// Денормализованные поля для карточки записи в боте и мини-аппе.
	ServiceName        string `gorm:"type:varchar(255)"`
	ServicePrice       string `gorm:"type:varchar(64)"`
	ServiceCurrency    string `gorm:"type:varchar(16)"`
	SpecialistName     string `gorm:"type:varchar(255)"`
	SpecialistLastName string `gorm:"type:varchar(255)"`
	SpecialistAddress  string `gorm:"type:text"`
	SpecialistPhone    string `gorm:"type:varchar(32)"`

	Status AppointmentStatus `gorm:"type:varchar(32);not null;default:'active';index"`

	ReminderSent   bool       `gorm:"not null;default:false"`
	ReminderSentAt *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Specialist *Specialist `gorm:"foreignKey:SpecialistID;references:UserID"`
	Service    *Service    `gorm:"foreignKey:ServiceID"`
}
