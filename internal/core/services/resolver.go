package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
	"github.com/suchimauz/gcal-booking-agent/internal/utils"
)

var (
	// Явное время вида "3pm", "10 am", "2:30 pm"
	clockMeridiemRegexp = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	// Время с двоеточием без am/pm, например "15:00"
	clock24Regexp = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	// Маркеры явного времени в тексте; "am" без цифры перед ним маркером не считается,
	// иначе "am i free" распознавалось бы как время
	timeMarkerRegexp = regexp.MustCompile(`(\b\d{1,2}(:\d{2})?\s*(am|pm)\b)|(\b\d{1,2}:\d{2}\b)|\bmorning\b|\bafternoon\b|\bevening\b|\bo'?clock\b`)
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Служебные слова, которые мешают общему парсеру дат и не несут информации о времени
var fillerWords = map[string]struct{}{
	"book": {}, "schedule": {}, "reserve": {}, "confirm": {}, "check": {},
	"meeting": {}, "meet": {}, "appointment": {}, "call": {},
	"a": {}, "an": {}, "the": {}, "my": {}, "me": {}, "i": {}, "you": {}, "we": {},
	"is": {}, "are": {}, "do": {}, "have": {}, "has": {}, "please": {},
	"can": {}, "could": {}, "would": {}, "like": {}, "want": {}, "to": {}, "for": {},
	"free": {}, "available": {}, "availability": {}, "slot": {}, "slots": {},
	"what": {}, "whats": {}, "when": {}, "lets": {}, "let's": {}, "time": {}, "times": {},
}

// resolveMoment распознает момент времени из свободного текста.
// Порядок: фразовые переопределения, "tomorrow" с явным временем, день недели,
// общий парсер, голое время. Неудача - явный исход ok=false, никогда не паника
func (s *ChatAgentService) resolveMoment(text string, now time.Time) (domain.ResolvedMoment, bool) {
	text = strings.ToLower(text)

	// Фразовые переопределения с предсказуемым временем по умолчанию
	tomorrow := utils.StartNextDay(now)
	switch {
	case strings.Contains(text, "tomorrow afternoon"):
		return timeOfDayMoment(utils.AtHourMinute(tomorrow, 15, 0)), true
	case strings.Contains(text, "tomorrow morning"):
		return timeOfDayMoment(utils.AtHourMinute(tomorrow, 10, 0)), true
	case strings.Contains(text, "tomorrow evening"):
		return timeOfDayMoment(utils.AtHourMinute(tomorrow, 18, 0)), true
	}

	if strings.Contains(text, "tomorrow") {
		if hour, minute, ok := extractClockTime(text); ok {
			return timeOfDayMoment(utils.AtHourMinute(tomorrow, hour, minute)), true
		}
		if !hasTimeMarker(text) {
			return timeOfDayMoment(utils.AtHourMinute(tomorrow, s.cfg.Booking.DefaultHour, 0)), true
		}
		// Маркер времени есть, но часы не извлеклись - пусть разбирается общий парсер
	}

	// Название дня недели: следующее вхождение строго после now, сегодня не возвращаем.
	// Проверяется до общего парсера, у того поведение для "сегодняшнего" дня недели не определено
	if weekday, ok := findWeekday(text); ok {
		day := utils.NextWeekday(now, weekday)
		hour, minute := s.cfg.Booking.DefaultHour, 0
		if h, m, ok := extractClockTime(text); ok {
			hour, minute = h, m
		} else if h, ok := periodHour(text); ok {
			hour = h
		}
		return timeOfDayMoment(utils.AtHourMinute(day, hour, minute)), true
	}

	if moment, ok := s.parseFuzzy(text, now); ok {
		return moment, true
	}

	// Голое время: сегодня, либо завтра, если время уже прошло
	if hour, minute, ok := extractClockTime(text); ok {
		t := utils.AtHourMinute(now, hour, minute)
		if !t.After(now) {
			t = t.AddDate(0, 0, 1)
		}
		return timeOfDayMoment(t), true
	}

	return domain.ResolvedMoment{}, false
}

// parseFuzzy вызывает общий парсер дат с предпочтением будущих интерпретаций.
// Питоновский dateparser терпел мусорные слова вокруг даты, go-порт строже,
// поэтому вторым заходом пробуем текст без служебных слов
func (s *ChatAgentService) parseFuzzy(text string, now time.Time) (domain.ResolvedMoment, bool) {
	parserCfg := &dateparser.Configuration{
		CurrentTime:         now,
		DefaultTimezone:     s.location,
		PreferredDateSource: dateparser.Future,
	}

	for _, candidate := range []string{text, stripFillerWords(text)} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}

		parsed, err := dateparser.Parse(parserCfg, candidate)
		if err != nil || parsed.Time.IsZero() {
			continue
		}

		moment := domain.ResolvedMoment{
			Time:      parsed.Time.In(s.location),
			Precision: domain.PrecisionDayOnly,
		}
		if hasTimeMarker(text) {
			moment.Precision = domain.PrecisionTimeOfDay
		}
		return moment, true
	}

	return domain.ResolvedMoment{}, false
}

func timeOfDayMoment(t time.Time) domain.ResolvedMoment {
	return domain.ResolvedMoment{Time: t, Precision: domain.PrecisionTimeOfDay}
}

func hasTimeMarker(text string) bool {
	return timeMarkerRegexp.MatchString(text)
}

// extractClockTime извлекает явное время ("3pm", "2:30 pm", "15:00")
func extractClockTime(text string) (int, int, bool) {
	if m := clockMeridiemRegexp.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, 0, false
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return hour, minute, true
	}

	if m := clock24Regexp.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, 0, false
		}
		return hour, minute, true
	}

	return 0, 0, false
}

// findWeekday ищет название дня недели целым словом, не подстрокой
func findWeekday(text string) (time.Weekday, bool) {
	for _, word := range splitWords(text) {
		if weekday, exists := weekdayNames[word]; exists {
			return weekday, true
		}
	}
	return time.Sunday, false
}

// periodHour - час по умолчанию для части дня
func periodHour(text string) (int, bool) {
	switch {
	case strings.Contains(text, "morning"):
		return 10, true
	case strings.Contains(text, "afternoon"):
		return 15, true
	case strings.Contains(text, "evening"):
		return 18, true
	}
	return 0, false
}

func stripFillerWords(text string) string {
	kept := make([]string, 0)
	for _, word := range strings.Fields(text) {
		trimmed := strings.Trim(word, ".,!?;")
		if _, skip := fillerWords[trimmed]; skip {
			continue
		}
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
}
