package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

func TestClassifyIntentKeywords(t *testing.T) {
	s := newTestService(&fakeCalendar{})
	session := newTestSession()

	cases := []struct {
		text   string
		intent domain.Intent
	}{
		{"am i free tomorrow", domain.IntentCheckAvailability},
		{"what is my availability on friday", domain.IntentCheckAvailability},
		{"do i have anything tomorrow", domain.IntentCheckAvailability},
		{"what slots are open tomorrow", domain.IntentCheckAvailability},
		{"book tomorrow at 3pm", domain.IntentBook},
		{"schedule a call for friday", domain.IntentBook},
		{"reserve next monday", domain.IntentBook},
		{"hi", domain.IntentGreeting},
		{"hello there", domain.IntentGreeting},
		{"qwerty", domain.IntentUnknown},
	}

	for _, tc := range cases {
		intent, _ := s.classifyIntent(tc.text, session)
		assert.Equal(t, tc.intent, intent, tc.text)
	}
}

func TestClassifyIntentAvailabilityBeatsBooking(t *testing.T) {
	s := newTestService(&fakeCalendar{})

	// Слова обоих намерений: побеждает запрос занятости
	intent, _ := s.classifyIntent("am i free to book tomorrow", newTestSession())
	assert.Equal(t, domain.IntentCheckAvailability, intent)
}

func TestClassifyIntentGreetingRequiresWholeWord(t *testing.T) {
	s := newTestService(&fakeCalendar{})

	// "hi" внутри "this" - не приветствие
	intent, _ := s.classifyIntent("this does not make sense", newTestSession())
	assert.Equal(t, domain.IntentUnknown, intent)
}

func TestClassifyIntentConfirmsOfferedSlot(t *testing.T) {
	s := newTestService(&fakeCalendar{})
	session := newTestSession()

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	slots := buildDaySlots(day, 9, 17, time.Hour)
	session.SetOffered(day, slots, testNow)

	intent, slot := s.classifyIntent("2 pm", session)
	require.Equal(t, domain.IntentConfirmSlot, intent)
	assert.Equal(t, time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC), slot.StartTime)

	// Время вне списка не подтверждение
	intent, _ = s.classifyIntent("7 pm", session)
	assert.Equal(t, domain.IntentUnknown, intent)
}

func TestClassifyIntentOfferedSlotRoundTrip(t *testing.T) {
	s := newTestService(&fakeCalendar{})
	session := newTestSession()

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	slots := buildDaySlots(day, 9, 17, time.Hour)
	session.SetOffered(day, slots, testNow)

	// Каждое время из показанного пользователю списка возвращает тот же слот
	for _, offered := range slots {
		text := strings.ToLower(offered.StartTime.Format(clockFormat))
		intent, slot := s.classifyIntent(text, session)
		require.Equal(t, domain.IntentConfirmSlot, intent, text)
		assert.Equal(t, offered, slot, text)
	}
}

func TestClassifyIntentNoOfferedSlotsMeansUnknown(t *testing.T) {
	s := newTestService(&fakeCalendar{})

	intent, _ := s.classifyIntent("2 pm", newTestSession())
	assert.Equal(t, domain.IntentUnknown, intent)
}

func TestHasAllDayPhrase(t *testing.T) {
	assert.True(t, hasAllDayPhrase("am i free tomorrow all day"))
	assert.True(t, hasAllDayPhrase("is the whole day open"))
	assert.False(t, hasAllDayPhrase("am i free tomorrow at 3pm"))
}

func TestHasSlotKeyword(t *testing.T) {
	assert.True(t, hasSlotKeyword("what slots are free tomorrow"))
	assert.True(t, hasSlotKeyword("any openings on friday"))
	assert.False(t, hasSlotKeyword("am i free tomorrow"))
}
