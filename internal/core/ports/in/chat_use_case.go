package in

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

type ChatUseCase interface {
	// Обработка одного сообщения диалога: распознать время, определить намерение,
	// проверить занятость или создать запись, вернуть ответ
	Handle(ctx context.Context, sessionID uuid.UUID, text string) (string, *domain.ConversationState, error)

	// История диалога для отображения
	History(ctx context.Context, sessionID uuid.UUID) (*domain.ConversationState, bool)

	// Инвалидация кэша занятости при изменении календаря извне
	InvalidateBusyCache(ctx context.Context, day time.Time)
	InvalidateAllBusyCache(ctx context.Context)
}
