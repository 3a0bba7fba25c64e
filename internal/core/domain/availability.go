package domain

import "time"

type AvailabilityStatus string

const (
	AvailabilityStatusFree AvailabilityStatus = "free"
	AvailabilityStatusBusy AvailabilityStatus = "busy"
)

// SlotAvailability - результат проверки одного часового окна
type SlotAvailability struct {
	Window    CandidateSlot      `json:"window"`
	Status    AvailabilityStatus `json:"status"`
	Conflicts []BusyInterval     `json:"conflicts,omitempty"`
}

// DayAvailability - результат проверки занятости целого дня
type DayAvailability struct {
	Day    time.Time      `json:"day"`
	Events []BusyInterval `json:"events"`
}

func (d DayAvailability) Free() bool {
	return len(d.Events) == 0
}

// SlotEnumeration - свободные слоты рабочего дня
type SlotEnumeration struct {
	Day       time.Time       `json:"day"`
	FreeSlots []CandidateSlot `json:"freeSlots"`
}
