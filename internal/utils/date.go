package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/gcal-booking-agent/internal/config"
)

// StartCurrentDay возвращает начало дня, таймзона остается прежней
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующего дня
func StartNextDay(t time.Time) time.Time {
	return StartCurrentDay(t.AddDate(0, 0, 1))
}

// AtHourMinute возвращает тот же день с установленным временем
func AtHourMinute(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то
// пробует дату со временем без таймзоны и голую дату в таймзоне приложения
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		location := config.TimeZone
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}

// NextWeekday возвращает начало следующего вхождения дня недели строго после t.
// Если сегодня тот же день недели, возвращается дата через 7 дней, никогда сегодня
func NextWeekday(t time.Time, weekday time.Weekday) time.Time {
	daysAhead := int(weekday-t.Weekday()+7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return StartCurrentDay(t.AddDate(0, 0, daysAhead))
}
