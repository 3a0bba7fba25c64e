package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)         {}
func (nopLogger) Info(event string, fields out.LogFields)          {}
func (nopLogger) Warn(event string, fields out.LogFields)          {}
func (nopLogger) Error(event string, fields out.LogFields)         {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func newTestAdapter(t *testing.T, busyTTLSec int) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.SessionsSize = 4
	cfg.Cache.BusyDaysSize = 4
	cfg.Cache.BusyTTLSec = busyTTLSec

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	return adapter
}

func TestSessionStoreGetInvalidate(t *testing.T) {
	adapter := newTestAdapter(t, 60)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	session := domain.NewConversationState(uuid.New(), now)
	session.Append(domain.MessageRoleUser, "hi", now)

	_, exists := adapter.GetSession(ctx, session.ID)
	assert.False(t, exists)

	adapter.StoreSession(ctx, session)

	stored, exists := adapter.GetSession(ctx, session.ID)
	require.True(t, exists)
	assert.Equal(t, session.ID, stored.ID)
	require.Len(t, stored.Messages, 1)

	adapter.InvalidateSession(ctx, session.ID)
	_, exists = adapter.GetSession(ctx, session.ID)
	assert.False(t, exists)
}

func TestSessionEviction(t *testing.T) {
	adapter := newTestAdapter(t, 60)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	first := domain.NewConversationState(uuid.New(), now)
	adapter.StoreSession(ctx, first)

	// Емкость 4: пятая сессия вытесняет самую старую
	for i := 0; i < 4; i++ {
		adapter.StoreSession(ctx, domain.NewConversationState(uuid.New(), now))
	}

	_, exists := adapter.GetSession(ctx, first.ID)
	assert.False(t, exists)
}

func TestBusyIntervalsStoreGet(t *testing.T) {
	adapter := newTestAdapter(t, 60)
	ctx := context.Background()
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	_, exists := adapter.GetBusyIntervals(ctx, day)
	assert.False(t, exists)

	intervals := []domain.BusyInterval{
		{
			StartTime: time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 3, 11, 16, 0, 0, 0, time.UTC),
			Summary:   "Standup",
		},
	}
	adapter.StoreBusyIntervals(ctx, day, intervals)

	stored, exists := adapter.GetBusyIntervals(ctx, day)
	require.True(t, exists)
	assert.Equal(t, intervals, stored)

	// Момент внутри дня отображается на тот же ключ
	_, exists = adapter.GetBusyIntervals(ctx, day.Add(13*time.Hour))
	assert.True(t, exists)

	// Соседний день пуст
	_, exists = adapter.GetBusyIntervals(ctx, day.AddDate(0, 0, 1))
	assert.False(t, exists)
}

func TestBusyIntervalsTTLExpiry(t *testing.T) {
	adapter := newTestAdapter(t, 0)
	ctx := context.Background()
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	adapter.StoreBusyIntervals(ctx, day, []domain.BusyInterval{})

	// Нулевой TTL: запись протухает сразу после записи
	time.Sleep(time.Millisecond)
	_, exists := adapter.GetBusyIntervals(ctx, day)
	assert.False(t, exists)
}

func TestBusyIntervalsInvalidate(t *testing.T) {
	adapter := newTestAdapter(t, 60)
	ctx := context.Background()
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	otherDay := day.AddDate(0, 0, 1)

	adapter.StoreBusyIntervals(ctx, day, []domain.BusyInterval{})
	adapter.StoreBusyIntervals(ctx, otherDay, []domain.BusyInterval{})

	adapter.InvalidateBusyIntervals(ctx, day)
	_, exists := adapter.GetBusyIntervals(ctx, day)
	assert.False(t, exists)
	_, exists = adapter.GetBusyIntervals(ctx, otherDay)
	assert.True(t, exists)

	adapter.InvalidateAllBusyIntervals(ctx)
	_, exists = adapter.GetBusyIntervals(ctx, otherDay)
	assert.False(t, exists)
}
