package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
	"github.com/suchimauz/gcal-booking-agent/internal/utils"
)

const busyDayKeyFormat = "2006-01-02"

type busyCacheEntry struct {
	Intervals []domain.BusyInterval
	StoredAt  time.Time
}

// CacheAdapter хранит состояние диалогов и дневные занятые интервалы.
// Сессии живут всегда, занятость - с TTL и инвалидацией из RabbitMQ
type CacheAdapter struct {
	sessions *lru.Cache[uuid.UUID, *domain.ConversationState]
	busyDays *lru.Cache[string, *busyCacheEntry]
	busyTTL  time.Duration
	mu       sync.RWMutex
	logger   out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	sessions, err := lru.New[uuid.UUID, *domain.ConversationState](cfg.Cache.SessionsSize)
	if err != nil {
		logger.Error("cache.sessions.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SessionsSize,
		})
		return nil, err
	}

	busyDays, err := lru.New[string, *busyCacheEntry](cfg.Cache.BusyDaysSize)
	if err != nil {
		logger.Error("cache.busy.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.BusyDaysSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		sessions: sessions,
		busyDays: busyDays,
		busyTTL:  time.Duration(cfg.Cache.BusyTTLSec) * time.Second,
		logger:   logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ConversationState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, exists := c.sessions.Get(sessionID)
	if !exists {
		c.logger.Debug("cache.sessions.get.miss", out.LogFields{
			"sessionId": sessionID,
		})
		return nil, false
	}
	return session, true
}

func (c *CacheAdapter) StoreSession(ctx context.Context, session *domain.ConversationState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions.Add(session.ID, session)
}

func (c *CacheAdapter) InvalidateSession(ctx context.Context, sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions.Remove(sessionID)
}

func (c *CacheAdapter) GetBusyIntervals(ctx context.Context, day time.Time) ([]domain.BusyInterval, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := busyDayKey(day)
	entry, exists := c.busyDays.Get(key)
	if !exists {
		c.logger.Debug("cache.busy.get.miss", out.LogFields{
			"day": key,
		})
		return nil, false
	}

	if time.Since(entry.StoredAt) > c.busyTTL {
		c.logger.Debug("cache.busy.get.expired", out.LogFields{
			"day": key,
		})
		return nil, false
	}

	c.logger.Debug("cache.busy.get.hit", out.LogFields{
		"day":   key,
		"count": len(entry.Intervals),
	})
	return entry.Intervals, true
}

func (c *CacheAdapter) StoreBusyIntervals(ctx context.Context, day time.Time, intervals []domain.BusyInterval) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.busy.store", out.LogFields{
		"day":   busyDayKey(day),
		"count": len(intervals),
	})

	c.busyDays.Add(busyDayKey(day), &busyCacheEntry{
		Intervals: intervals,
		StoredAt:  time.Now(),
	})
}

func (c *CacheAdapter) InvalidateBusyIntervals(ctx context.Context, day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.busy.invalidate", out.LogFields{
		"day": busyDayKey(day),
	})
	c.busyDays.Remove(busyDayKey(day))
}

func (c *CacheAdapter) InvalidateAllBusyIntervals(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.busy.invalidate_all", out.LogFields{})
	c.busyDays.Purge()
}

func busyDayKey(day time.Time) string {
	return utils.StartCurrentDay(day).Format(busyDayKeyFormat)
}
