package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/gcal-booking-agent/internal/core/domain"
)

const (
	dayFormat      = "Monday, 02 January 2006"
	dateTimeFormat = "Monday, 02 January 2006 at 03:04 PM"
	bookedFormat   = "Monday, 02 January 2006 03:04 PM"
	clockFormat    = "03:04 PM"
)

const (
	replyStoreUnavailable = "Calendar service is not available due to a configuration error. " +
		"Please check the app logs for details."

	replyGreeting = "Hello! I can check your calendar availability and book one-hour meetings. " +
		"Try 'am I free tomorrow afternoon' or 'book tomorrow at 3 PM'."

	replyUnknown = "Please mention if you want to check availability or book a meeting. " +
		"For example: 'what slots are free tomorrow' or 'book next Monday at 3 PM'."

	replyUnresolved = "I couldn't understand the date and/or time you provided. " +
		"Please try a more specific phrase like 'next Monday at 3 PM' or 'tomorrow morning'."

	replyUnresolvedBooking = "I couldn't understand the time for booking. " +
		"Please try something like 'book a meeting tomorrow at 3 PM'."
)

func formatSlotAvailability(result domain.SlotAvailability) string {
	when := result.Window.StartTime.Format(dateTimeFormat)

	if result.Status == domain.AvailabilityStatusFree {
		return fmt.Sprintf("You appear to be free %s!", when)
	}
	return fmt.Sprintf(
		"You have existing event(s) %s: %s. You are not entirely free during that period.",
		when, formatBusyList(result.Conflicts),
	)
}

func formatDayAvailability(result domain.DayAvailability) string {
	when := fmt.Sprintf("all day on %s", result.Day.Format(dayFormat))

	if result.Free() {
		return fmt.Sprintf("You appear to be free %s!", when)
	}
	return fmt.Sprintf(
		"You have existing event(s) %s: %s. You are not entirely free during that period.",
		when, formatBusyList(result.Events),
	)
}

func formatOfferedSlots(result domain.SlotEnumeration) string {
	times := make([]string, 0, len(result.FreeSlots))
	for _, slot := range result.FreeSlots {
		times = append(times, slot.StartTime.Format(clockFormat))
	}
	return fmt.Sprintf(
		"You have %d free one-hour slot(s) on %s: %s. Reply with one of the times to book it.",
		len(result.FreeSlots), result.Day.Format(dayFormat), strings.Join(times, ", "),
	)
}

func formatNoFreeSlots(day time.Time) string {
	return fmt.Sprintf(
		"You have no free one-hour slots on %s. Please try another day.",
		day.Format(dayFormat),
	)
}

func formatBookingResult(result domain.BookingResult) string {
	if result.Outcome == domain.BookingOutcomeConflict {
		return fmt.Sprintf(
			"That time is already taken on %s: %s. Please try another time.",
			result.Slot.StartTime.Format(dateTimeFormat), formatBusyList(result.Conflicts),
		)
	}
	return fmt.Sprintf(
		"Meeting booked successfully for %s.",
		result.Slot.StartTime.Format(bookedFormat),
	)
}

func formatBusyList(events []domain.BusyInterval) string {
	parts := make([]string, 0, len(events))
	for _, event := range events {
		summary := event.Summary
		if summary == "" {
			summary = "No Title"
		}
		if event.AllDay {
			parts = append(parts, fmt.Sprintf("All-day event: '%s'", summary))
			continue
		}
		parts = append(parts, fmt.Sprintf(
			"'%s' from %s to %s",
			summary, event.StartTime.Format(clockFormat), event.EndTime.Format(clockFormat),
		))
	}
	return strings.Join(parts, "; ")
}

func formatCheckError(err error) string {
	return fmt.Sprintf(
		"An error occurred while checking your calendar: %v. "+
			"Please ensure the service account has the necessary Google Calendar API permissions.",
		err,
	)
}

func formatBookError(err error) string {
	return fmt.Sprintf(
		"An error occurred while booking the meeting: %v. "+
			"Please ensure the service account has the necessary Google Calendar API permissions.",
		err,
	)
}
