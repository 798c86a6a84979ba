package schedule

import "testing"

func mustTOD(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return tod
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func mustSlots(t *testing.T, ss ...string) []TimeOfDay {
	t.Helper()
	out := make([]TimeOfDay, 0, len(ss))
	for _, s := range ss {
		out = append(out, mustTOD(t, s))
	}
	return out
}

func equalSlots(a, b []TimeOfDay) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func slotStrings(slots []TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

//
// Парсинг времени и даты
//

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if int(tod) != 9*60+30 {
		t.Fatalf("expected 570 minutes, got %d", int(tod))
	}
	if tod.String() != "09:30" {
		t.Fatalf("expected round-trip 09:30, got %q", tod.String())
	}

	// Почти-времена вроде "09:0a" должны отклоняться, а не разбираться
	// до первой нецифры.
	for _, bad := range []string{
		"", "9:00", "24:00", "12:60", "ab:cd", "12-30", "12:300",
		"09:0a", " 9:00", "09: 0", "0x:00", "1 :00", "09:30 ",
	} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q, got nil", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("15.12.2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "15.12.2024" {
		t.Fatalf("expected round-trip 15.12.2024, got %q", d.String())
	}
	// 15.12.2024 — воскресенье.
	if d.Weekday() != 7 {
		t.Fatalf("expected ISO weekday 7, got %d", d.Weekday())
	}
	// 16.12.2024 — понедельник.
	if mustDate(t, "16.12.2024").Weekday() != 1 {
		t.Fatalf("expected ISO weekday 1 for 16.12.2024")
	}

	for _, bad := range []string{"", "2024-12-15", "32.01.2024", "15.13.2024", "15.12.24"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q, got nil", bad)
		}
	}
}

//
// Generate: сетка из рабочего интервала
//

func TestGenerate_WorkHoursGrid(t *testing.T) {
	rule := Rule{
		Kind:  KindWorkHours,
		Start: mustTOD(t, "09:00"),
		End:   mustTOD(t, "18:00"),
	}

	slots := Generate(rule, 60)
	expected := mustSlots(t, "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00")
	if !equalSlots(slots, expected) {
		t.Fatalf("expected %v, got %v", slotStrings(expected), slotStrings(slots))
	}
}

func TestGenerate_WorkHoursTailDropped(t *testing.T) {
	rule := Rule{
		Kind:  KindWorkHours,
		Start: mustTOD(t, "09:00"),
		End:   mustTOD(t, "10:30"),
	}

	// 09:00 и 09:45 помещаются, 10:30 вышел бы за границу.
	slots := Generate(rule, 45)
	if !equalSlots(slots, mustSlots(t, "09:00", "09:45")) {
		t.Fatalf("expected [09:00 09:45], got %v", slotStrings(slots))
	}
}

func TestGenerate_WorkHoursGridProperty(t *testing.T) {
	start := mustTOD(t, "08:15")
	end := mustTOD(t, "19:40")
	rule := Rule{Kind: KindWorkHours, Start: start, End: end}

	for _, d := range []int{15, 30, 40, 60, 90, 240} {
		slots := Generate(rule, d)
		expectedCount := (int(end) - int(start)) / d
		if len(slots) != expectedCount {
			t.Fatalf("duration %d: expected %d slots, got %d", d, expectedCount, len(slots))
		}
		for i, s := range slots {
			if s < start || s.Add(d) > end {
				t.Fatalf("duration %d: slot %s out of [%s, %s]", d, s, start, end)
			}
			if i > 0 && int(s)-int(slots[i-1]) != d {
				t.Fatalf("duration %d: slots not spaced by %d: %v", d, d, slotStrings(slots))
			}
		}
	}
}

func TestGenerate_WorkHoursNoDuration(t *testing.T) {
	rule := Rule{
		Kind:  KindWorkHours,
		Start: mustTOD(t, "09:00"),
		End:   mustTOD(t, "18:00"),
	}

	if got := Generate(rule, 0); len(got) != 0 {
		t.Fatalf("expected no slots without duration, got %v", slotStrings(got))
	}
	if got := Generate(rule, -30); len(got) != 0 {
		t.Fatalf("expected no slots for negative duration, got %v", slotStrings(got))
	}
}

func TestGenerate_ExplicitSlotsVerbatim(t *testing.T) {
	configured := mustSlots(t, "09:00", "09:30", "14:00")
	rule := Rule{Kind: KindExplicitSlots, Slots: configured}

	slots := Generate(rule, 60)
	if !equalSlots(slots, configured) {
		t.Fatalf("expected configured slots unchanged, got %v", slotStrings(slots))
	}

	// Длительность на готовые слоты не влияет.
	if !equalSlots(Generate(rule, 0), configured) {
		t.Fatalf("expected configured slots regardless of duration")
	}

	// Возвращается копия, а не общий срез с правилом.
	slots[0] = mustTOD(t, "23:00")
	if rule.Slots[0] != mustTOD(t, "09:00") {
		t.Fatalf("Generate must not alias the rule's slot list")
	}
}

//
// FilterOverlapping: полуоткрытые интервалы
//

func TestFilterOverlapping_Boundaries(t *testing.T) {
	busy := []Busy{{Start: mustTOD(t, "10:00"), DurationMin: 60}}

	// c + d == busy.start — касание, не пересечение.
	kept := FilterOverlapping(mustSlots(t, "09:00"), busy, 60)
	if !equalSlots(kept, mustSlots(t, "09:00")) {
		t.Fatalf("expected 09:00 kept (touching is not overlap), got %v", slotStrings(kept))
	}

	// c == busy.start — всегда пересечение.
	kept = FilterOverlapping(mustSlots(t, "10:00"), busy, 60)
	if len(kept) != 0 {
		t.Fatalf("expected 10:00 rejected (same start), got %v", slotStrings(kept))
	}

	// c == busy.end — следующий впритык, не пересечение.
	kept = FilterOverlapping(mustSlots(t, "11:00"), busy, 60)
	if !equalSlots(kept, mustSlots(t, "11:00")) {
		t.Fatalf("expected 11:00 kept, got %v", slotStrings(kept))
	}

	// Частичное перекрытие с обеих сторон.
	kept = FilterOverlapping(mustSlots(t, "09:30", "10:30"), busy, 60)
	if len(kept) != 0 {
		t.Fatalf("expected partial overlaps rejected, got %v", slotStrings(kept))
	}
}

func TestFilterOverlapping_NoBusyKeepsAll(t *testing.T) {
	candidates := mustSlots(t, "09:00", "10:00", "11:00")
	kept := FilterOverlapping(candidates, nil, 60)
	if !equalSlots(kept, candidates) {
		t.Fatalf("expected all candidates kept, got %v", slotStrings(kept))
	}
}

func TestFilterOverlapping_DefaultDuration(t *testing.T) {
	// Длительность не передана: для проверки пересечений берётся 60 минут.
	busy := []Busy{{Start: mustTOD(t, "09:30"), DurationMin: 30}}
	kept := FilterOverlapping(mustSlots(t, "09:00", "10:00"), busy, 0)
	if !equalSlots(kept, mustSlots(t, "10:00")) {
		t.Fatalf("expected [10:00], got %v", slotStrings(kept))
	}
}

//
// Resolve: приоритет области действия и вида правила
//

func TestResolve_SpecificDateBeatsWeekday(t *testing.T) {
	date := mustDate(t, "16.12.2024") // понедельник
	rules := []Rule{
		{Kind: KindWorkHours, Weekday: 1, Start: mustTOD(t, "09:00"), End: mustTOD(t, "18:00")},
		{Kind: KindWorkHours, SpecificDate: "16.12.2024", Start: mustTOD(t, "12:00"), End: mustTOD(t, "15:00")},
	}

	rule, ok := Resolve(rules, date, 0, KindWorkHours)
	if !ok {
		t.Fatalf("expected rule to be found")
	}
	if rule.SpecificDate != "16.12.2024" {
		t.Fatalf("expected specific-date rule to win, got %+v", rule)
	}
}

func TestResolve_WeekdayFallback(t *testing.T) {
	date := mustDate(t, "16.12.2024") // понедельник
	rules := []Rule{
		{Kind: KindWorkHours, SpecificDate: "17.12.2024", Start: mustTOD(t, "08:00"), End: mustTOD(t, "12:00")},
		{Kind: KindWorkHours, Weekday: 1, Start: mustTOD(t, "09:00"), End: mustTOD(t, "18:00")},
	}

	rule, ok := Resolve(rules, date, 0, KindWorkHours)
	if !ok || rule.Weekday != 1 {
		t.Fatalf("expected weekday rule for Monday, got ok=%v rule=%+v", ok, rule)
	}
}

func TestResolve_WeekdayOverride(t *testing.T) {
	date := mustDate(t, "16.12.2024") // понедельник
	rules := []Rule{
		{Kind: KindWorkHours, Weekday: 1, Name: "mon"},
		{Kind: KindWorkHours, Weekday: 3, Name: "wed"},
	}

	rule, ok := Resolve(rules, date, 3, KindWorkHours)
	if !ok || rule.Name != "wed" {
		t.Fatalf("expected override to pick Wednesday rule, got ok=%v rule=%+v", ok, rule)
	}
}

func TestResolve_NotFound(t *testing.T) {
	date := mustDate(t, "16.12.2024")
	if _, ok := Resolve(nil, date, 0, KindWorkHours); ok {
		t.Fatalf("expected no rule for empty set")
	}
}

func TestResolve_DuplicatesPickFirst(t *testing.T) {
	// Дубли по одной области действия: выигрывает первое правило
	// (хранилище отдаёт их по возрастанию id).
	date := mustDate(t, "16.12.2024")
	rules := []Rule{
		{Kind: KindWorkHours, Weekday: 1, Name: "older"},
		{Kind: KindWorkHours, Weekday: 1, Name: "newer"},
	}

	rule, _ := Resolve(rules, date, 0, KindWorkHours)
	if rule.Name != "older" {
		t.Fatalf("expected deterministic pick of first rule, got %q", rule.Name)
	}
}

//
// AvailableSlots: сквозные сценарии
//

func TestAvailableSlots_WorkHoursNoBookings(t *testing.T) {
	rules := []Rule{{
		Kind:    KindWorkHours,
		Start:   mustTOD(t, "09:00"),
		End:     mustTOD(t, "18:00"),
		Weekday: 1,
	}}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	slots, err := AvailableSlots(rules, nil, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d: %v", len(slots), slotStrings(slots))
	}
	if slots[0] != mustTOD(t, "09:00") || slots[8] != mustTOD(t, "17:00") {
		t.Fatalf("expected 09:00..17:00, got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_WorkHoursWithBooking(t *testing.T) {
	rules := []Rule{{
		Kind:    KindWorkHours,
		Start:   mustTOD(t, "09:00"),
		End:     mustTOD(t, "18:00"),
		Weekday: 1,
	}}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	// Запись на 10:00 длительностью 30 минут выбивает только слот 10:00.
	busy := []Busy{{Start: mustTOD(t, "10:00"), DurationMin: 30}}
	slots, err := AvailableSlots(rules, busy, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %v", slotStrings(slots))
	}
	for _, s := range slots {
		if s == mustTOD(t, "10:00") {
			t.Fatalf("expected 10:00 removed, got %v", slotStrings(slots))
		}
	}

	// Запись 09:30 на 90 минут занимает [09:30, 11:00): частично
	// перекрывает 09:00 и 10:00, а 11:00 начинается впритык и остаётся.
	busy = []Busy{{Start: mustTOD(t, "09:30"), DurationMin: 90}}
	slots, err = AvailableSlots(rules, busy, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlots(slots, mustSlots(t, "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00")) {
		t.Fatalf("expected 11:00..17:00, got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_ExplicitSlotsWithBooking(t *testing.T) {
	rules := []Rule{{
		Kind:    KindExplicitSlots,
		Weekday: 1,
		Slots:   mustSlots(t, "09:00", "09:30", "14:00"),
	}}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 30}

	// Запись 09:00 на 45 минут: 09:00 и 09:30 внутри [09:00, 09:45).
	busy := []Busy{{Start: mustTOD(t, "09:00"), DurationMin: 45}}
	slots, err := AvailableSlots(rules, busy, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlots(slots, mustSlots(t, "14:00")) {
		t.Fatalf("expected [14:00], got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_ExplicitSlotsBeatWorkHours(t *testing.T) {
	rules := []Rule{
		{Kind: KindWorkHours, Weekday: 1, Start: mustTOD(t, "09:00"), End: mustTOD(t, "18:00")},
		{Kind: KindExplicitSlots, Weekday: 1, Slots: mustSlots(t, "20:00")},
	}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	slots, err := AvailableSlots(rules, nil, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlots(slots, mustSlots(t, "20:00")) {
		t.Fatalf("expected explicit slots to win over work hours, got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_NoRules(t *testing.T) {
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	slots, err := AvailableSlots(nil, nil, q)
	if err != nil {
		t.Fatalf("expected empty result without error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty result, got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_SpecificDateWorkHoursBeatsWeekday(t *testing.T) {
	rules := []Rule{
		{Kind: KindWorkHours, Weekday: 1, Start: mustTOD(t, "09:00"), End: mustTOD(t, "18:00")},
		{Kind: KindWorkHours, SpecificDate: "16.12.2024", Start: mustTOD(t, "12:00"), End: mustTOD(t, "14:00")},
	}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	slots, err := AvailableSlots(rules, nil, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlots(slots, mustSlots(t, "12:00", "13:00")) {
		t.Fatalf("expected hours from the specific-date rule only, got %v", slotStrings(slots))
	}
}

func TestAvailableSlots_InvalidInput(t *testing.T) {
	q := Query{Date: mustDate(t, "16.12.2024"), WeekdayOverride: 8}
	if _, err := AvailableSlots(nil, nil, q); err == nil {
		t.Fatalf("expected error for weekday override out of range")
	}

	q = Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: -15}
	if _, err := AvailableSlots(nil, nil, q); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	rules := []Rule{{
		Kind:    KindWorkHours,
		Weekday: 1,
		Start:   mustTOD(t, "09:00"),
		End:     mustTOD(t, "13:00"),
	}}
	busy := []Busy{{Start: mustTOD(t, "10:00"), DurationMin: 60}}
	q := Query{Date: mustDate(t, "16.12.2024"), ServiceDurationMin: 60}

	first, err := AvailableSlots(rules, busy, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AvailableSlots(rules, busy, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlots(first, second) {
		t.Fatalf("expected identical output for identical input: %v vs %v",
			slotStrings(first), slotStrings(second))
	}
}
