package services

import (
	"strings"

	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

// intentRule - одно правило классификатора. Правила проверяются по порядку,
// срабатывает первое: запрос занятости имеет приоритет над записью,
// если в сообщении есть ключевые слова обоих
type intentRule struct {
	intent domain.Intent
	// phrases проверяются подстрокой, как в исходных эвристиках
	phrases []string
	// words проверяются целым словом, чтобы "hi" не находилось внутри "this"
	words []string
}

var intentRules = []intentRule{
	{
		intent:  domain.IntentCheckAvailability,
		phrases: []string{"available", "availability", "free", "slot", "time", "do i have"},
	},
	{
		intent:  domain.IntentBook,
		phrases: []string{"book", "schedule", "reserve", "confirm"},
	},
	{
		intent: domain.IntentGreeting,
		words:  []string{"hi", "hello", "hey"},
	},
}

// Фразы запроса занятости на целый день
var allDayPhrases = []string{"all day", "entire day", "whole day", "any time"}

// Ключевые слова перечисления слотов
var slotKeywords = []string{"slot", "slots", "option", "options", "opening", "openings"}

// classifyIntent определяет намерение сообщения. Для IntentConfirmSlot
// вторым значением возвращается совпавший предложенный слот
func (s *ChatAgentService) classifyIntent(text string, session *domain.ConversationState) (domain.Intent, domain.CandidateSlot) {
	for _, rule := range intentRules {
		if matchRule(rule, text) {
			return rule.intent, domain.CandidateSlot{}
		}
	}

	// Короткий ответ на показанный список слотов, например "2 pm"
	if session != nil && session.Offered != nil {
		if hour, minute, ok := extractClockTime(text); ok {
			if slot, found := session.Offered.MatchTime(hour, minute); found {
				return domain.IntentConfirmSlot, slot
			}
		}
	}

	return domain.IntentUnknown, domain.CandidateSlot{}
}

func matchRule(rule intentRule, text string) bool {
	for _, phrase := range rule.phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	if len(rule.words) > 0 {
		for _, word := range splitWords(text) {
			for _, keyword := range rule.words {
				if word == keyword {
					return true
				}
			}
		}
	}
	return false
}

func hasAllDayPhrase(text string) bool {
	for _, phrase := range allDayPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func hasSlotKeyword(text string) bool {
	for _, word := range splitWords(text) {
		for _, keyword := range slotKeywords {
			if word == keyword {
				return true
			}
		}
	}
	return false
}
