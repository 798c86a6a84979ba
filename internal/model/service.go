package model

import "time"

// services — услуга специалиста.
type Service struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	SpecialistID string `gorm:"type:varchar(64);not null;index"`

	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`

	// Цена и валюта хранятся строками — так их прислал мини-апп.
	Price    string `gorm:"type:varchar(64)"`
	Currency string `gorm:"type:varchar(16)"`

	// В минутах; nil — длительность не задана, на границе подставляется 60.
	DurationMin *int `gorm:"type:bigint"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Specialist *Specialist `gorm:"foreignKey:SpecialistID;references:UserID"`
}
