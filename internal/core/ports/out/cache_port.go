package out

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

type CachePort interface {
	// Кэширование состояния диалогов
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ConversationState, bool)
	StoreSession(ctx context.Context, session *domain.ConversationState)
	InvalidateSession(ctx context.Context, sessionID uuid.UUID)

	// Кэширование занятых интервалов по дням
	GetBusyIntervals(ctx context.Context, day time.Time) ([]domain.BusyInterval, bool)
	StoreBusyIntervals(ctx context.Context, day time.Time, intervals []domain.BusyInterval)
	InvalidateBusyIntervals(ctx context.Context, day time.Time)
	InvalidateAllBusyIntervals(ctx context.Context)
}
