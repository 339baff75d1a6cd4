package domain

import "time"

// InteractionType identifies the contact channel used.
type InteractionType string

const (
	InteractionTypeCall     InteractionType = "call"
	InteractionTypeSMS      InteractionType = "sms"
	InteractionTypeWhatsApp InteractionType = "whatsapp"
)

// ValidInteractionType reports whether t is a known channel.
func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionTypeCall, InteractionTypeSMS, InteractionTypeWhatsApp:
		return true
	}
	return false
}

// Interaction is an immutable audit record of one contact attempt. Rows are
// only ever inserted; there is no update or delete path.
type Interaction struct {
	ID           int64
	AssignmentID int64
	CustomerID   int64
	EmployeeID   int64
	Type         InteractionType
	OccurredAt   time.Time
	Status       CallStatus
	StatusText   *string
	FollowUpDate *time.Time
	DurationSec  *int
	RecordedBy   int64
	CreatedAt    time.Time

	// joined employee columns for history views
	EmployeeName string
	EmployeeCode string
}
