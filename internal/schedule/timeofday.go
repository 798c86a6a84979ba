package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay — время суток в минутах с полуночи.
// Вся арифметика слотов идёт по "наивным" настенным часам специалиста,
// без таймзон.
type TimeOfDay int

// ParseTimeOfDay разбирает строку строго формата "HH:MM" (09:00, 18:30).
// Обе пары обязаны быть цифрами: " 9:00", "09:0a" и прочие почти-времена
// отклоняются, а не молча дочитываются до ближайшего числа. Принятая
// строка всегда совпадает с канонической формой String().
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' ||
		!isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(h*60 + m), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Add возвращает время, сдвинутое на minutes минут вперёд.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Date — календарная дата без времени.
type Date struct {
	t time.Time
}

// ParseDate разбирает дату формата "DD.MM.YYYY" (15.12.2024).
// Несуществующие даты (32.01 и т.п.) отклоняются.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// Weekday возвращает ISO-день недели: 1 — понедельник .. 7 — воскресенье.
func (d Date) Weekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d Date) String() string {
	return d.t.Format("02.01.2006")
}
