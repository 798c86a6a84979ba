package model

import "gorm.io/gorm"

// Migrate выполняет миграцию всех сущностей сервиса бронирования.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Specialist{},
		&Service{},
		&ScheduleRule{},
		&Appointment{},
		&AppointmentEvent{},
	); err != nil {
		return err
	}

	// Частичный уникальный индекс: два активных бронирования одного
	// времени у одного специалиста невозможны, даже если оба запроса
	// одновременно увидели слот свободным. Работает и в Postgres, и в
	// SQLite (тесты).
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_appointment_slot
		 ON appointments (specialist_id, date, time)
		 WHERE status = 'active'`,
	).Error
}
