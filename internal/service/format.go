package service

import (
	"fmt"

	"github.com/zapisly/booking-platform/internal/schedule"
)

var ruWeekdays = map[int]string{
	1: "Понедельник",
	2: "Вторник",
	3: "Среда",
	4: "Четверг",
	5: "Пятница",
	6: "Суббота",
	7: "Воскресенье",
}

// formatSlot форматирует дату и время записи в человекочитаемую строку
// для журнала аудита: "Понедельник, 16.12.2024, 10:00".
func formatSlot(dateStr, timeStr string) string {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return fmt.Sprintf("%s, %s", dateStr, timeStr)
	}
	return fmt.Sprintf("%s, %s, %s", ruWeekdays[date.Weekday()], dateStr, timeStr)
}
