package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusyIntervalOverlapsHalfOpen(t *testing.T) {
	interval := BusyInterval{
		StartTime: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC),
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 3, 11, hour, minute, 0, 0, time.UTC)
	}

	// Стык границ пересечением не считается
	assert.False(t, interval.Overlaps(at(9, 0), at(10, 0)))
	assert.False(t, interval.Overlaps(at(11, 0), at(12, 0)))

	assert.True(t, interval.Overlaps(at(10, 0), at(11, 0)))
	assert.True(t, interval.Overlaps(at(10, 30), at(11, 30)))
	assert.True(t, interval.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, interval.Overlaps(at(9, 0), at(12, 0)))
	assert.True(t, interval.Overlaps(at(10, 15), at(10, 45)))
}

func TestResolvedMomentDayBounds(t *testing.T) {
	moment := ResolvedMoment{
		Time:      time.Date(2025, 3, 11, 15, 42, 7, 123, time.UTC),
		Precision: PrecisionTimeOfDay,
	}

	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), moment.DayStart())
	assert.Equal(t, time.Date(2025, 3, 11, 23, 59, 59, 999999999, time.UTC), moment.DayEnd())
	assert.False(t, moment.IsDayOnly())

	moment.Precision = PrecisionDayOnly
	assert.True(t, moment.IsDayOnly())
}
