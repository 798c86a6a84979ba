package model

import "time"

// users — общая база пользователей мини-аппа (клиенты и специалисты).
type User struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	// Telegram ID хранится строкой: им же ссылаются записи и правила графика.
	TelegramID string `gorm:"type:varchar(64);not null;uniqueIndex"`

	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Username  string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Навигационные поля (опционально)
	Specialist *Specialist `gorm:"foreignKey:UserID;references:TelegramID"`
}
