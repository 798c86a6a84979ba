package schedule

import "fmt"

// Busy — занятый интервал: существующая запись с временем начала и
// длительностью услуги. Интервал полуоткрытый: [Start, Start+DurationMin).
type Busy struct {
	Start       TimeOfDay
	DurationMin int
}

// DefaultDurationMin используется для проверки пересечений, когда
// длительность услуги не передана (готовые слоты её не требуют).
const DefaultDurationMin = 60

// Generate превращает правило в список кандидатов времени начала.
//
// Для KindExplicitSlots возвращается копия настроенного списка как есть.
// Для KindWorkHours слоты идут от Start с шагом durationMin; последний
// слот обязан целиком помещаться до End (s + d <= End), хвост короче
// длительности отбрасывается. При durationMin <= 0 из рабочего интервала
// слоты сгенерировать нельзя — возвращается пустой список.
func Generate(rule Rule, durationMin int) []TimeOfDay {
	switch rule.Kind {
	case KindExplicitSlots:
		out := make([]TimeOfDay, len(rule.Slots))
		copy(out, rule.Slots)
		return out
	case KindWorkHours:
		if durationMin <= 0 {
			return nil
		}
		var out []TimeOfDay
		for cur := rule.Start; cur.Add(durationMin) <= rule.End; cur = cur.Add(durationMin) {
			out = append(out, cur)
		}
		return out
	}
	return nil
}

// FilterOverlapping убирает кандидатов, чей интервал [c, c+durationMin)
// пересекается хотя бы с одним занятым интервалом. Пересечение по
// полуоткрытым интервалам: c < busy.end && c+d > busy.start — касание
// концами пересечением не считается. Порядок выживших сохраняется.
//
// Квадратичный проход по двум спискам: в пределах одного дня обоих
// элементов единицы, сортировка со sweep-ом здесь не окупается.
func FilterOverlapping(candidates []TimeOfDay, busy []Busy, durationMin int) []TimeOfDay {
	if durationMin <= 0 {
		durationMin = DefaultDurationMin
	}

	free := make([]TimeOfDay, 0, len(candidates))
	for _, c := range candidates {
		cEnd := c.Add(durationMin)
		overlaps := false
		for _, b := range busy {
			bEnd := b.Start.Add(b.DurationMin)
			if c < bEnd && cEnd > b.Start {
				overlaps = true
				break
			}
		}
		if !overlaps {
			free = append(free, c)
		}
	}
	return free
}

// Query — вход конвейера вычисления свободных слотов.
type Query struct {
	Date Date
	// WeekdayOverride: 0 — взять день недели из Date, иначе 1..7.
	WeekdayOverride int
	// ServiceDurationMin: 0 — длительность не передана (допустимо только
	// для готовых слотов), иначе строго положительное число минут.
	ServiceDurationMin int
}

// AvailableSlots — полный конвейер: выбор правила, генерация кандидатов,
// фильтрация по занятым интервалам.
//
// Сначала ищется правило готовых слотов (KindExplicitSlots) — ручная
// настройка точнее сгенерированной сетки и всегда выигрывает. Только если
// его нет или список пуст, берётся рабочий интервал (KindWorkHours).
// Нет ни того ни другого — пустой результат без ошибки.
func AvailableSlots(rules []Rule, busy []Busy, q Query) ([]TimeOfDay, error) {
	if q.WeekdayOverride < 0 || q.WeekdayOverride > 7 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, q.WeekdayOverride)
	}
	if q.ServiceDurationMin < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, q.ServiceDurationMin)
	}

	var candidates []TimeOfDay
	if rule, ok := Resolve(rules, q.Date, q.WeekdayOverride, KindExplicitSlots); ok && len(rule.Slots) > 0 {
		candidates = Generate(rule, q.ServiceDurationMin)
	} else if rule, ok := Resolve(rules, q.Date, q.WeekdayOverride, KindWorkHours); ok {
		candidates = Generate(rule, q.ServiceDurationMin)
	}

	if len(candidates) == 0 {
		return []TimeOfDay{}, nil
	}

	return FilterOverlapping(candidates, busy, q.ServiceDurationMin), nil
}
