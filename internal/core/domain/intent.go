package domain

type Intent string

const (
	IntentCheckAvailability Intent = "check_availability"
	IntentBook              Intent = "book"
	IntentConfirmSlot       Intent = "confirm_offered_slot"
	IntentGreeting          Intent = "greeting"
	IntentUnknown           Intent = "unknown"
)
