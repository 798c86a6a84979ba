package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zapisly/booking-platform/internal/cache"
	"github.com/zapisly/booking-platform/internal/model"
	"github.com/zapisly/booking-platform/internal/repository"
	"github.com/zapisly/booking-platform/internal/schedule"
)

// ScheduleService — правила графика и вычисление свободных слотов.
type ScheduleService struct {
	rules        repository.ScheduleRuleRepository
	appointments repository.AppointmentRepository
	events       repository.EventRepository
	ruleCache    *cache.RuleCache
	log          zerolog.Logger
}

func NewScheduleService(
	rules repository.ScheduleRuleRepository,
	appointments repository.AppointmentRepository,
	events repository.EventRepository,
	ruleCache *cache.RuleCache,
	log zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		rules:        rules,
		appointments: appointments,
		events:       events,
		ruleCache:    ruleCache,
		log:          log.With().Str("module", "schedule_service").Logger(),
	}
}

// AvailableSlots возвращает свободные времена начала ("HH:MM") для
// специалиста на дату dateStr ("DD.MM.YYYY"). dayOfWeek 0 — взять из
// даты; serviceDurationMin 0 — длительность не передана (допустимо
// только для готовых слотов).
func (s *ScheduleService) AvailableSlots(
	ctx context.Context,
	specialistID, dateStr string,
	dayOfWeek, serviceDurationMin int,
) ([]string, error) {
	if specialistID == "" {
		return nil, fmt.Errorf("%w: specialist_id is required", ErrValidation)
	}

	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	rules, err := s.loadRules(ctx, specialistID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	busy, err := s.loadBusyIntervals(ctx, specialistID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("load busy intervals: %w", err)
	}

	slots, err := schedule.AvailableSlots(rules, busy, schedule.Query{
		Date:               date,
		WeekdayOverride:    dayOfWeek,
		ServiceDurationMin: serviceDurationMin,
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.String())
	}

	s.log.Debug().
		Str("specialist_id", specialistID).
		Str("date", dateStr).
		Int("free", len(out)).
		Int("busy", len(busy)).
		Msg("slots computed")

	return out, nil
}

// loadRules достаёт правила специалиста из кэша или хранилища и
// конвертирует их в чистую модель.
func (s *ScheduleService) loadRules(ctx context.Context, specialistID string) ([]schedule.Rule, error) {
	rows, ok := s.ruleCache.Get(specialistID)
	if !ok {
		var err error
		rows, err = s.rules.ListBySpecialist(ctx, specialistID, "")
		if err != nil {
			return nil, err
		}
		s.ruleCache.Put(specialistID, rows)
	}

	rules := make([]schedule.Rule, 0, len(rows))
	for i := range rows {
		rule, err := toDomainRule(&rows[i])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// loadBusyIntervals собирает занятые интервалы из активных записей.
// Длительность берётся из услуги записи, без услуги — 60 минут.
func (s *ScheduleService) loadBusyIntervals(ctx context.Context, specialistID, date string) ([]schedule.Busy, error) {
	appointments, err := s.appointments.ListActiveBySpecialistAndDate(ctx, specialistID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Busy, 0, len(appointments))
	for _, a := range appointments {
		start, err := schedule.ParseTimeOfDay(a.Time)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", a.ID, err)
		}
		duration := schedule.DefaultDurationMin
		if a.Service != nil && a.Service.DurationMin != nil && *a.Service.DurationMin > 0 {
			duration = *a.Service.DurationMin
		}
		busy = append(busy, schedule.Busy{Start: start, DurationMin: duration})
	}
	return busy, nil
}

// toDomainRule конвертирует строку хранилища в правило чистого ядра.
func toDomainRule(row *model.ScheduleRule) (schedule.Rule, error) {
	rule := schedule.Rule{
		SpecialistID: row.SpecialistID,
		Name:         row.Name,
	}
	if row.DayOfWeek != nil {
		rule.Weekday = *row.DayOfWeek
	}
	if row.SpecificDate != nil {
		rule.SpecificDate = *row.SpecificDate
	}

	switch row.Kind {
	case model.RuleKindWorkSchedule:
		rule.Kind = schedule.KindWorkHours
		if row.StartTime == nil || row.EndTime == nil {
			return schedule.Rule{}, fmt.Errorf("rule %d: work schedule without start/end time", row.ID)
		}
		start, err := schedule.ParseTimeOfDay(*row.StartTime)
		if err != nil {
			return schedule.Rule{}, fmt.Errorf("rule %d: %w", row.ID, err)
		}
		end, err := schedule.ParseTimeOfDay(*row.EndTime)
		if err != nil {
			return schedule.Rule{}, fmt.Errorf("rule %d: %w", row.ID, err)
		}
		rule.Start, rule.End = start, end
	case model.RuleKindAvailableSlots:
		rule.Kind = schedule.KindExplicitSlots
		raw, err := row.SlotList()
		if err != nil {
			return schedule.Rule{}, err
		}
		rule.Slots = make([]schedule.TimeOfDay, 0, len(raw))
		for _, s := range raw {
			slot, err := schedule.ParseTimeOfDay(s)
			if err != nil {
				return schedule.Rule{}, fmt.Errorf("rule %d: %w", row.ID, err)
			}
			rule.Slots = append(rule.Slots, slot)
		}
	default:
		return schedule.Rule{}, fmt.Errorf("rule %d: unknown kind %q", row.ID, row.Kind)
	}

	return rule, nil
}

// WorkScheduleInput — создание/обновление правила рабочего времени.
type WorkScheduleInput struct {
	SpecialistID string
	DayOfWeek    *int
	SpecificDate *string
	StartTime    string
	EndTime      string
	Name         string
}

// AvailableSlotsInput — создание/обновление правила готовых слотов.
type AvailableSlotsInput struct {
	SpecialistID string
	DayOfWeek    *int
	SpecificDate *string
	TimeSlots    []string
	Name         string
}

// CreateWorkSchedule создаёт правило рабочего времени. Повторное правило
// того же вида на ту же область действия отклоняется.
func (s *ScheduleService) CreateWorkSchedule(ctx context.Context, in WorkScheduleInput) (*model.ScheduleRule, error) {
	if err := validateScope(in.SpecialistID, in.DayOfWeek, in.SpecificDate); err != nil {
		return nil, err
	}
	if _, _, err := validateWorkHours(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	exists, err := s.rules.ExistsForScope(ctx, in.SpecialistID, model.RuleKindWorkSchedule, in.DayOfWeek, in.SpecificDate, 0)
	if err != nil {
		return nil, fmt.Errorf("check existing rules: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRule
	}

	rule := &model.ScheduleRule{
		SpecialistID: in.SpecialistID,
		DayOfWeek:    in.DayOfWeek,
		SpecificDate: in.SpecificDate,
		Kind:         model.RuleKindWorkSchedule,
		StartTime:    &in.StartTime,
		EndTime:      &in.EndTime,
		Name:         in.Name,
	}
	if rule.Name == "" {
		rule.Name = defaultRuleName("Рабочий день", in.DayOfWeek, in.SpecificDate)
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create work schedule: %w", err)
	}
	s.afterRuleChange(ctx, rule, "создано правило рабочего времени")
	return rule, nil
}

// CreateAvailableSlots создаёт правило готовых слотов.
func (s *ScheduleService) CreateAvailableSlots(ctx context.Context, in AvailableSlotsInput) (*model.ScheduleRule, error) {
	if err := validateScope(in.SpecialistID, in.DayOfWeek, in.SpecificDate); err != nil {
		return nil, err
	}
	if err := validateSlotList(in.TimeSlots); err != nil {
		return nil, err
	}

	exists, err := s.rules.ExistsForScope(ctx, in.SpecialistID, model.RuleKindAvailableSlots, in.DayOfWeek, in.SpecificDate, 0)
	if err != nil {
		return nil, fmt.Errorf("check existing rules: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRule
	}

	rule := &model.ScheduleRule{
		SpecialistID: in.SpecialistID,
		DayOfWeek:    in.DayOfWeek,
		SpecificDate: in.SpecificDate,
		Kind:         model.RuleKindAvailableSlots,
		Name:         in.Name,
	}
	if err := rule.SetSlotList(in.TimeSlots); err != nil {
		return nil, err
	}
	if rule.Name == "" {
		rule.Name = defaultRuleName("Доступные слоты", in.DayOfWeek, in.SpecificDate)
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create available slots: %w", err)
	}
	s.afterRuleChange(ctx, rule, "создано правило доступных слотов")
	return rule, nil
}

// UpdateWorkSchedule обновляет правило рабочего времени. Проверка дублей
// выполняется и здесь: обновление не может увести правило на занятую
// область действия.
func (s *ScheduleService) UpdateWorkSchedule(ctx context.Context, id int64, in WorkScheduleInput) (*model.ScheduleRule, error) {
	rule, err := s.getRuleOfKind(ctx, id, model.RuleKindWorkSchedule)
	if err != nil {
		return nil, err
	}

	if in.DayOfWeek != nil || in.SpecificDate != nil {
		if err := validateScope(rule.SpecialistID, in.DayOfWeek, in.SpecificDate); err != nil {
			return nil, err
		}
		exists, err := s.rules.ExistsForScope(ctx, rule.SpecialistID, rule.Kind, in.DayOfWeek, in.SpecificDate, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("check existing rules: %w", err)
		}
		if exists {
			return nil, ErrDuplicateRule
		}
		rule.DayOfWeek = in.DayOfWeek
		rule.SpecificDate = in.SpecificDate
	}

	startTime, endTime := rule.StartTime, rule.EndTime
	if in.StartTime != "" {
		startTime = &in.StartTime
	}
	if in.EndTime != "" {
		endTime = &in.EndTime
	}
	// Старые строки с NULL-временем чиним только целиком: без обеих
	// границ правило рабочего времени не имеет смысла.
	if startTime == nil || endTime == nil {
		return nil, fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if _, _, err := validateWorkHours(*startTime, *endTime); err != nil {
		return nil, err
	}
	rule.StartTime, rule.EndTime = startTime, endTime

	if in.Name != "" {
		rule.Name = in.Name
	}

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("update work schedule: %w", err)
	}
	s.afterRuleChange(ctx, rule, "обновлено правило рабочего времени")
	return rule, nil
}

// UpdateAvailableSlots обновляет правило готовых слотов.
func (s *ScheduleService) UpdateAvailableSlots(ctx context.Context, id int64, in AvailableSlotsInput) (*model.ScheduleRule, error) {
	rule, err := s.getRuleOfKind(ctx, id, model.RuleKindAvailableSlots)
	if err != nil {
		return nil, err
	}

	if in.DayOfWeek != nil || in.SpecificDate != nil {
		if err := validateScope(rule.SpecialistID, in.DayOfWeek, in.SpecificDate); err != nil {
			return nil, err
		}
		exists, err := s.rules.ExistsForScope(ctx, rule.SpecialistID, rule.Kind, in.DayOfWeek, in.SpecificDate, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("check existing rules: %w", err)
		}
		if exists {
			return nil, ErrDuplicateRule
		}
		rule.DayOfWeek = in.DayOfWeek
		rule.SpecificDate = in.SpecificDate
	}

	if in.TimeSlots != nil {
		if err := validateSlotList(in.TimeSlots); err != nil {
			return nil, err
		}
		if err := rule.SetSlotList(in.TimeSlots); err != nil {
			return nil, err
		}
	}
	if in.Name != "" {
		rule.Name = in.Name
	}

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("update available slots: %w", err)
	}
	s.afterRuleChange(ctx, rule, "обновлено правило доступных слотов")
	return rule, nil
}

// DeleteRule удаляет правило любого вида.
func (s *ScheduleService) DeleteRule(ctx context.Context, id int64) error {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.rules.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	s.afterRuleChange(ctx, rule, "правило удалено")
	return nil
}

// GetRule возвращает правило по ID.
func (s *ScheduleService) GetRule(ctx context.Context, id int64) (*model.ScheduleRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rule, nil
}

// ListRules возвращает правила специалиста, опционально по виду.
func (s *ScheduleService) ListRules(ctx context.Context, specialistID string, kind model.ScheduleRuleKind) ([]model.ScheduleRule, error) {
	if specialistID == "" {
		return nil, fmt.Errorf("%w: specialist_id is required", ErrValidation)
	}
	if kind != "" && kind != model.RuleKindWorkSchedule && kind != model.RuleKindAvailableSlots {
		return nil, fmt.Errorf("%w: unknown grafik_type %q", ErrValidation, kind)
	}
	return s.rules.ListBySpecialist(ctx, specialistID, kind)
}

func (s *ScheduleService) getRuleOfKind(ctx context.Context, id int64, kind model.ScheduleRuleKind) (*model.ScheduleRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rule.Kind != kind {
		return nil, fmt.Errorf("%w: rule %d is not of kind %s", ErrValidation, id, kind)
	}
	return rule, nil
}

// afterRuleChange сбрасывает кэш специалиста и пишет событие аудита.
func (s *ScheduleService) afterRuleChange(ctx context.Context, rule *model.ScheduleRule, details string) {
	s.ruleCache.Invalidate(rule.SpecialistID)

	event := &model.AppointmentEvent{
		EventType:    model.EventTypeScheduleRuleChanged,
		SpecialistID: rule.SpecialistID,
		Details:      fmt.Sprintf("%s: %s", details, rule.Name),
	}
	if err := s.events.Record(ctx, event); err != nil {
		// Аудит не должен ронять основную операцию.
		s.log.Warn().Err(err).Int64("rule_id", rule.ID).Msg("record rule event")
	}
}

func validateScope(specialistID string, dayOfWeek *int, specificDate *string) error {
	if specialistID == "" {
		return fmt.Errorf("%w: specialist_id is required", ErrValidation)
	}
	if (dayOfWeek == nil) == (specificDate == nil) {
		return fmt.Errorf("%w: exactly one of day_of_week and specific_date is required", ErrValidation)
	}
	if dayOfWeek != nil && (*dayOfWeek < 1 || *dayOfWeek > 7) {
		return fmt.Errorf("%w: %d", schedule.ErrInvalidWeekday, *dayOfWeek)
	}
	if specificDate != nil {
		if _, err := schedule.ParseDate(*specificDate); err != nil {
			return err
		}
	}
	return nil
}

func validateWorkHours(startTime, endTime string) (schedule.TimeOfDay, schedule.TimeOfDay, error) {
	start, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := schedule.ParseTimeOfDay(endTime)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}
	return start, end, nil
}

// validateSlotList проверяет, что слоты заданы, разбираются и строго
// возрастают.
func validateSlotList(slots []string) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: at least one time slot is required", ErrValidation)
	}
	prev := schedule.TimeOfDay(-1)
	for _, s := range slots {
		slot, err := schedule.ParseTimeOfDay(s)
		if err != nil {
			return err
		}
		if slot <= prev {
			return fmt.Errorf("%w: time slots must be strictly increasing", ErrValidation)
		}
		prev = slot
	}
	return nil
}

func defaultRuleName(prefix string, dayOfWeek *int, specificDate *string) string {
	if specificDate != nil {
		return fmt.Sprintf("%s %s", prefix, *specificDate)
	}
	return fmt.Sprintf("%s %d", prefix, *dayOfWeek)
}
