package schedule

import "errors"

// Ошибки некорректного входа. Отсутствие правил ошибкой не является —
// это нормальное состояние "график не настроен", пустой результат.
var (
	ErrInvalidDate     = errors.New("invalid date, expected DD.MM.YYYY")
	ErrInvalidTime     = errors.New("invalid time, expected HH:MM")
	ErrInvalidDuration = errors.New("service duration must be positive")
	ErrInvalidWeekday  = errors.New("weekday must be in range 1..7")
)
