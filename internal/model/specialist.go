package model

import "time"

// Статус специалиста. Неактивные специалисты не принимают новые записи.
type SpecialistStatus string

const (
	SpecialistStatusActive  SpecialistStatus = "active"
	SpecialistStatusBlocked SpecialistStatus = "blocked"
)

// specialists — исполнитель услуг (мастер, консультант и т.п.).
type Specialist struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	// Внешний идентификатор специалиста: Telegram ID пользователя.
	// Именно на него ссылаются правила графика и записи.
	UserID string `gorm:"type:varchar(64);not null;uniqueIndex"`

	ChatID string `gorm:"type:varchar(64)"`

	FirstName    string           `gorm:"type:varchar(255)"`
	LastName     string           `gorm:"type:varchar(255)"`
	Username     string           `gorm:"type:varchar(255)"`
	Phone        string           `gorm:"type:varchar(32)"`
	Category     string           `gorm:"type:varchar(255)"`
	Description  string           `gorm:"type:text"`
	Address      string           `gorm:"type:text"`
	TelegramLink string           `gorm:"type:varchar(255)"`
	Image        string           `gorm:"type:text"`
	Status       SpecialistStatus `gorm:"type:varchar(32);not null;default:'active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Навигационные поля для GORM (удобно для Preload).
	User         *User          `gorm:"foreignKey:UserID;references:TelegramID"`
	Services     []Service      `gorm:"foreignKey:SpecialistID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rules        []ScheduleRule `gorm:"foreignKey:SpecialistID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Appointments []Appointment  `gorm:"foreignKey:SpecialistID;references:UserID"`
}
