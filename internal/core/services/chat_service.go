package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
)

type ChatAgentService struct {
	calendarPort out.CalendarPort
	cachePort    out.CachePort
	cfg          *config.Config
	logger       out.LoggerPort
	location     *time.Location
	now          func() time.Time
}

func NewChatAgentService(
	calendarPort out.CalendarPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *ChatAgentService {
	return &ChatAgentService{
		calendarPort: calendarPort,
		cachePort:    cachePort,
		cfg:          cfg,
		logger:       logger.WithModule("ChatAgentService"),
		location:     cfg.Location(),
		now:          time.Now,
	}
}

func (s *ChatAgentService) Handle(ctx context.Context, sessionID uuid.UUID, text string) (string, *domain.ConversationState, error) {
	now := s.now().In(s.location)

	session := s.loadSession(ctx, sessionID, now)
	session.Append(domain.MessageRoleUser, text, now)

	reply := s.handleMessage(ctx, session, text, now)

	session.Append(domain.MessageRoleBot, reply, now)
	s.storeSession(ctx, session)

	return reply, session, nil
}

func (s *ChatAgentService) History(ctx context.Context, sessionID uuid.UUID) (*domain.ConversationState, bool) {
	if s.cachePort == nil {
		return nil, false
	}
	return s.cachePort.GetSession(ctx, sessionID)
}

func (s *ChatAgentService) InvalidateBusyCache(ctx context.Context, day time.Time) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateBusyIntervals(ctx, day)
}

func (s *ChatAgentService) InvalidateAllBusyCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAllBusyIntervals(ctx)
}

// handleMessage обрабатывает одно сообщение уже загруженной сессии.
// Каждая ветка обязана вернуть ответ, молчаливых выходов нет
func (s *ChatAgentService) handleMessage(ctx context.Context, session *domain.ConversationState, text string, now time.Time) string {
	normalized := strings.ToLower(strings.TrimSpace(text))

	// Календарь не сконфигурирован - постоянное состояние, стор не дергаем
	if s.calendarPort == nil {
		s.logger.Warn("chat.message.store_unavailable", out.LogFields{
			"sessionId": session.ID,
		})
		return replyStoreUnavailable
	}

	intent, offered := s.classifyIntent(normalized, session)
	s.logger.Debug("chat.message.classified", out.LogFields{
		"sessionId": session.ID,
		"intent":    intent,
	})

	switch intent {
	case domain.IntentGreeting:
		return replyGreeting
	case domain.IntentCheckAvailability:
		return s.replyAvailability(ctx, session, normalized, now)
	case domain.IntentBook:
		return s.replyBooking(ctx, session, normalized, now)
	case domain.IntentConfirmSlot:
		return s.replyConfirmSlot(ctx, session, offered)
	default:
		return replyUnknown
	}
}

func (s *ChatAgentService) replyAvailability(ctx context.Context, session *domain.ConversationState, text string, now time.Time) string {
	moment, ok := s.resolveMoment(text, now)
	if !ok {
		s.logger.Info("chat.availability.unresolved", out.LogFields{
			"sessionId": session.ID,
		})
		return replyUnresolved
	}

	// Новый запрос занятости вытесняет предыдущий список предложенных слотов
	session.ClearOffered()

	if hasSlotKeyword(text) {
		enumeration, err := s.enumerateDaySlots(ctx, moment)
		if err != nil {
			return formatCheckError(err)
		}
		if len(enumeration.FreeSlots) == 0 {
			return formatNoFreeSlots(enumeration.Day)
		}
		session.SetOffered(enumeration.Day, enumeration.FreeSlots, now)
		s.logger.Info("chat.availability.slots_offered", out.LogFields{
			"sessionId":  session.ID,
			"day":        enumeration.Day,
			"slotsCount": len(enumeration.FreeSlots),
		})
		return formatOfferedSlots(enumeration)
	}

	if moment.IsDayOnly() || hasAllDayPhrase(text) {
		day, err := s.checkDayAvailability(ctx, moment)
		if err != nil {
			return formatCheckError(err)
		}
		return formatDayAvailability(day)
	}

	window, err := s.checkSlotAvailability(ctx, moment)
	if err != nil {
		return formatCheckError(err)
	}
	return formatSlotAvailability(window)
}

func (s *ChatAgentService) replyBooking(ctx context.Context, session *domain.ConversationState, text string, now time.Time) string {
	moment, ok := s.resolveMoment(text, now)
	if !ok {
		s.logger.Info("chat.booking.unresolved", out.LogFields{
			"sessionId": session.ID,
		})
		return replyUnresolvedBooking
	}

	result, err := s.bookMoment(ctx, moment)
	if err != nil {
		return formatBookError(err)
	}

	s.logger.Info("chat.booking.finished", out.LogFields{
		"sessionId": session.ID,
		"outcome":   result.Outcome,
		"begin":     result.Slot.StartTime,
	})
	return formatBookingResult(result)
}

func (s *ChatAgentService) replyConfirmSlot(ctx context.Context, session *domain.ConversationState, slot domain.CandidateSlot) string {
	// Список предложенных слотов расходуется вне зависимости от исхода записи
	defer session.ClearOffered()

	result, err := s.bookSlot(ctx, slot)
	if err != nil {
		return formatBookError(err)
	}

	s.logger.Info("chat.booking.offered_slot.finished", out.LogFields{
		"sessionId": session.ID,
		"outcome":   result.Outcome,
		"begin":     result.Slot.StartTime,
	})
	return formatBookingResult(result)
}

func (s *ChatAgentService) loadSession(ctx context.Context, sessionID uuid.UUID, now time.Time) *domain.ConversationState {
	if s.cachePort != nil {
		if session, exists := s.cachePort.GetSession(ctx, sessionID); exists {
			return session
		}
	}
	return domain.NewConversationState(sessionID, now)
}

func (s *ChatAgentService) storeSession(ctx context.Context, session *domain.ConversationState) {
	if s.cachePort != nil {
		s.cachePort.StoreSession(ctx, session)
	}
}
