package domain

import "time"

// Booking - запись, созданная во внешнем календаре
type Booking struct {
	EventID   string    `json:"eventId,omitempty"`
	StartTime time.Time `json:"begin"`
	EndTime   time.Time `json:"end"`
	Summary   string    `json:"summary"`
}

type BookingOutcome string

const (
	BookingOutcomeBooked   BookingOutcome = "booked"
	BookingOutcomeConflict BookingOutcome = "conflict"
)

type BookingResult struct {
	Outcome   BookingOutcome `json:"outcome"`
	Slot      CandidateSlot  `json:"slot"`
	Booking   *Booking       `json:"booking,omitempty"`
	Conflicts []BusyInterval `json:"conflicts,omitempty"`
}
