package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/zapisly/booking-platform/internal/model"
)

// RuleCache — ограниченный кэш правил графика с TTL, по одному набору
// строк на специалиста. Владелец — ScheduleService: он кладёт правила
// при чтении и сбрасывает ключ при любой записи. Глобального состояния
// нет, истёкшие записи вытесняются сами.
//
// Nil-приёмник допустим и означает выключенный кэш: все методы no-op.
type RuleCache struct {
	lru *expirable.LRU[string, []model.ScheduleRule]
	log zerolog.Logger
}

// NewRuleCache создаёт кэш на size специалистов с временем жизни ttl.
// size <= 0 — кэш выключен, возвращается nil.
func NewRuleCache(size int, ttl time.Duration, log zerolog.Logger) *RuleCache {
	if size <= 0 {
		log.Info().Msg("rule cache disabled")
		return nil
	}
	return &RuleCache{
		lru: expirable.NewLRU[string, []model.ScheduleRule](size, nil, ttl),
		log: log.With().Str("module", "rule_cache").Logger(),
	}
}

func (c *RuleCache) Get(specialistID string) ([]model.ScheduleRule, bool) {
	if c == nil {
		return nil, false
	}
	rules, ok := c.lru.Get(specialistID)
	if !ok {
		c.log.Debug().Str("specialist_id", specialistID).Msg("cache miss")
	}
	return rules, ok
}

func (c *RuleCache) Put(specialistID string, rules []model.ScheduleRule) {
	if c == nil {
		return
	}
	c.lru.Add(specialistID, rules)
}

// Invalidate сбрасывает кэш специалиста после изменения его правил.
func (c *RuleCache) Invalidate(specialistID string) {
	if c == nil {
		return
	}
	c.lru.Remove(specialistID)
	c.log.Debug().Str("specialist_id", specialistID).Msg("cache invalidated")
}
