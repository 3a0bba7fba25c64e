package domain

import "time"

// BusyInterval - проекция существующего события календаря, только для чтения
type BusyInterval struct {
	StartTime time.Time `json:"begin"`
	EndTime   time.Time `json:"end"`
	Summary   string    `json:"summary"`
	AllDay    bool      `json:"allDay,omitempty"`
}

// Overlaps проверяет пересечение с полуоткрытым окном [start, end)
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
