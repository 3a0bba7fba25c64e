package domain

import "time"

type MomentPrecision string

const (
	// PrecisionDayOnly - пользователь назвал дату без конкретного времени
	PrecisionDayOnly MomentPrecision = "day_only"
	// PrecisionTimeOfDay - время указано явно или выведено из формулировки
	PrecisionTimeOfDay MomentPrecision = "time_of_day"
)

// ResolvedMoment - конкретный момент времени, распознанный из свободного текста
type ResolvedMoment struct {
	Time      time.Time       `json:"time"`
	Precision MomentPrecision `json:"precision"`
}

func (m ResolvedMoment) IsDayOnly() bool {
	return m.Precision == PrecisionDayOnly
}

// DayStart возвращает начало дня момента в его таймзоне
func (m ResolvedMoment) DayStart() time.Time {
	t := m.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd возвращает конец дня момента (23:59:59.999999999)
func (m ResolvedMoment) DayEnd() time.Time {
	return m.DayStart().AddDate(0, 0, 1).Add(-time.Nanosecond)
}
