package schedule

// RuleKind — вид правила доступности.
type RuleKind int

const (
	// KindWorkHours — рабочий интервал [Start, End), из которого слоты
	// генерируются с шагом в длительность услуги.
	KindWorkHours RuleKind = iota
	// KindExplicitSlots — готовый список времён начала, заданный вручную.
	KindExplicitSlots
)

// Rule — одно настроенное правило специалиста.
//
// Область действия: либо повторяющийся день недели (Weekday 1..7,
// SpecificDate пустая), либо конкретная дата (SpecificDate "DD.MM.YYYY",
// Weekday 0). Ровно одно из двух.
//
// Поля Start/End заполнены для KindWorkHours, Slots — для
// KindExplicitSlots. Slots считаются уже отсортированными по возрастанию:
// за это отвечает административный слой, здесь порядок не перепроверяется.
type Rule struct {
	SpecialistID string
	Weekday      int
	SpecificDate string
	Kind         RuleKind
	Start        TimeOfDay
	End          TimeOfDay
	Slots        []TimeOfDay
	Name         string
}

// matchesDate сообщает, действует ли правило на конкретную дату.
func (r Rule) matchesDate(date Date) bool {
	return r.SpecificDate != "" && r.SpecificDate == date.String()
}

// matchesWeekday сообщает, действует ли повторяющееся правило на день недели.
func (r Rule) matchesWeekday(weekday int) bool {
	return r.SpecificDate == "" && r.Weekday == weekday
}

// Resolve выбирает правило требуемого вида для даты.
//
// Приоритет области действия: сначала правило на конкретную дату, затем
// повторяющееся по дню недели. Если weekdayOverride > 0, день недели
// берётся из него, иначе вычисляется из date. Отсутствие правила — не
// ошибка, второй результат false.
//
// rules ожидаются в детерминированном порядке (хранилище отдаёт их по
// возрастанию id), поэтому при дублях выигрывает самое раннее правило.
func Resolve(rules []Rule, date Date, weekdayOverride int, kind RuleKind) (Rule, bool) {
	for _, r := range rules {
		if r.Kind == kind && r.matchesDate(date) {
			return r, true
		}
	}

	weekday := weekdayOverride
	if weekday == 0 {
		weekday = date.Weekday()
	}

	for _, r := range rules {
		if r.Kind == kind && r.matchesWeekday(weekday) {
			return r, true
		}
	}

	return Rule{}, false
}
