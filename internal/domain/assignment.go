package domain

import "time"

// CallPriority ranks assignments in the agent queue.
type CallPriority string

const (
	CallPriorityHigh   CallPriority = "High"
	CallPriorityMedium CallPriority = "Medium"
	CallPriorityLow    CallPriority = "Low"
)

// CallStatus enumerates the assignment workflow. Pending is the only entry
// state; transitions happen exclusively through interaction recording.
type CallStatus string

const (
	CallStatusPending           CallStatus = "Pending"
	CallStatusContacted         CallStatus = "Contacted"
	CallStatusSalesGenerated    CallStatus = "Sales Generated"
	CallStatusFollowUpScheduled CallStatus = "Follow-up Scheduled"
	CallStatusClosedNoSale      CallStatus = "Closed-No-Sale"
)

// ValidCallStatus reports whether s is a known workflow status.
func ValidCallStatus(s CallStatus) bool {
	switch s {
	case CallStatusPending, CallStatusContacted, CallStatusSalesGenerated,
		CallStatusFollowUpScheduled, CallStatusClosedNoSale:
		return true
	}
	return false
}

// CanTransition reports whether recording an interaction may move the
// workflow from one status to another. Pending only ever moves to Contacted,
// Sales Generated and Closed-No-Sale are terminal, and a scheduled follow-up
// behaves like Contacted when the next attempt is recorded.
func CanTransition(from, to CallStatus) bool {
	switch from {
	case CallStatusPending:
		return to == CallStatusContacted
	case CallStatusContacted, CallStatusFollowUpScheduled:
		switch to {
		case CallStatusContacted, CallStatusSalesGenerated,
			CallStatusFollowUpScheduled, CallStatusClosedNoSale:
			return true
		}
	}
	return false
}

// ValidCallPriority reports whether p is a known priority.
func ValidCallPriority(p CallPriority) bool {
	switch p {
	case CallPriorityHigh, CallPriorityMedium, CallPriorityLow:
		return true
	}
	return false
}

// Assignment links one customer to one employee for contact follow-up.
type Assignment struct {
	ID           int64
	CustomerID   int64
	EmployeeID   int64
	Priority     CallPriority
	Status       CallStatus
	StatusText   *string
	AssignedAt   time.Time
	TargetDate   *time.Time
	CalledAt     *time.Time
	FollowUpDate *time.Time
	CallCount    int
	MessageCount int
	CreatedBy    *int64
	UpdatedBy    *int64
	UpdatedAt    *time.Time

	// joined columns for listings
	CustomerName   string
	CustomerCode   string
	CustomerMobile *string
	CustomerEmail  *string
	EmployeeName   string
	EmployeeCode   string
	ProjectID      *int64
	ProjectName    *string
	ProjectCode    *string
}
