package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser MessageRole = "user"
	MessageRoleBot  MessageRole = "bot"
)

type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ConversationState - состояние одного диалога. Единственная сущность,
// живущая между запросами; хранится в кэше сессий по идентификатору
type ConversationState struct {
	ID        uuid.UUID       `json:"id"`
	Messages  []ChatMessage   `json:"messages"`
	Offered   *OfferedSlotSet `json:"offered,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewConversationState(id uuid.UUID, now time.Time) *ConversationState {
	return &ConversationState{
		ID:        id,
		Messages:  []ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *ConversationState) Append(role MessageRole, text string, now time.Time) {
	s.Messages = append(s.Messages, ChatMessage{
		Role:      role,
		Text:      text,
		CreatedAt: now,
	})
	s.UpdatedAt = now
}

// SetOffered заменяет живой набор предложенных слотов.
// Одновременно может существовать только один набор на диалог
func (s *ConversationState) SetOffered(day time.Time, slots []CandidateSlot, now time.Time) {
	s.Offered = &OfferedSlotSet{
		Day:       day,
		Slots:     slots,
		OfferedAt: now,
	}
}

func (s *ConversationState) ClearOffered() {
	s.Offered = nil
}
