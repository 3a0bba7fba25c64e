package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCurrentDay(t *testing.T) {
	in := time.Date(2025, 3, 10, 18, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartCurrentDay(in))
}

func TestStartNextDay(t *testing.T) {
	in := time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), StartNextDay(in))
}

func TestAtHourMinute(t *testing.T) {
	in := time.Date(2025, 3, 10, 18, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC), AtHourMinute(in, 15, 30))
}

func TestNextWeekday(t *testing.T) {
	// Понедельник
	monday := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	// Тот же день недели - строго через неделю, не сегодня
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Monday))

	// Ближайшие дни вперед
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Tuesday))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Friday))

	// День недели до текущего - переход через выходные
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Sunday))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-03-10T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC), parsed.UTC())

	parsed, err = ParseDate("2025-03-10T15:04:05")
	require.NoError(t, err)
	assert.Equal(t, 15, parsed.Hour())

	parsed, err = ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 10, parsed.Day())

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
