package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// BulkAssignRequest hands a batch of customers to one employee.
type BulkAssignRequest struct {
	EmployeeID  int64      `json:"employee_id" validate:"required,gt=0"`
	CustomerIDs []int64    `json:"customer_ids" validate:"required,min=1,dive,gt=0"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	TargetDate  *time.Time `json:"target_date"`
}

// RecordInteractionRequest appends one contact attempt.
type RecordInteractionRequest struct {
	Type         string     `json:"type" validate:"required,oneof=call sms whatsapp"`
	Status       string     `json:"status" validate:"required"`
	StatusText   *string    `json:"status_text"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	DurationSec  *int       `json:"duration_sec" validate:"omitempty,gte=0"`
	OccurredAt   *time.Time `json:"occurred_at"`
}

// AssignmentResponse is the wire shape for one assignment.
type AssignmentResponse struct {
	ID             int64      `json:"id"`
	CustomerID     int64      `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerCode   string     `json:"customer_code"`
	CustomerMobile *string    `json:"customer_mobile"`
	CustomerEmail  *string    `json:"customer_email"`
	EmployeeID     int64      `json:"employee_id"`
	EmployeeName   string     `json:"employee_name"`
	EmployeeCode   string     `json:"employee_code"`
	ProjectID      *int64     `json:"project_id"`
	ProjectName    *string    `json:"project_name"`
	ProjectCode    *string    `json:"project_code"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	StatusText     *string    `json:"status_text"`
	AssignedAt     time.Time  `json:"assigned_at"`
	TargetDate     *time.Time `json:"target_date"`
	CalledAt       *time.Time `json:"called_at"`
	FollowUpDate   *time.Time `json:"follow_up_date"`
	CallCount      int        `json:"call_count"`
	MessageCount   int        `json:"message_count"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// InteractionResponse is one immutable history row.
type InteractionResponse struct {
	ID           int64      `json:"id"`
	AssignmentID int64      `json:"assignment_id"`
	CustomerID   int64      `json:"customer_id"`
	EmployeeID   int64      `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	EmployeeCode string     `json:"employee_code"`
	Type         string     `json:"type"`
	OccurredAt   time.Time  `json:"occurred_at"`
	Status       string     `json:"status"`
	StatusText   *string    `json:"status_text"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	DurationSec  *int       `json:"duration_sec"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewAssignmentResponse maps a domain assignment.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		CustomerID:     a.CustomerID,
		CustomerName:   a.CustomerName,
		CustomerCode:   a.CustomerCode,
		CustomerMobile: a.CustomerMobile,
		CustomerEmail:  a.CustomerEmail,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		EmployeeCode:   a.EmployeeCode,
		ProjectID:      a.ProjectID,
		ProjectName:    a.ProjectName,
		ProjectCode:    a.ProjectCode,
		Priority:       string(a.Priority),
		Status:         string(a.Status),
		StatusText:     a.StatusText,
		AssignedAt:     a.AssignedAt,
		TargetDate:     a.TargetDate,
		CalledAt:       a.CalledAt,
		FollowUpDate:   a.FollowUpDate,
		CallCount:      a.CallCount,
		MessageCount:   a.MessageCount,
		UpdatedAt:      a.UpdatedAt,
	}
}

// NewAssignmentResponses maps a listing page.
func NewAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	result := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, NewAssignmentResponse(&assignments[i]))
	}
	return result
}

// NewInteractionResponse maps one history row.
func NewInteractionResponse(in *domain.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:           in.ID,
		AssignmentID: in.AssignmentID,
		CustomerID:   in.CustomerID,
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		EmployeeCode: in.EmployeeCode,
		Type:         string(in.Type),
		OccurredAt:   in.OccurredAt,
		Status:       string(in.Status),
		StatusText:   in.StatusText,
		FollowUpDate: in.FollowUpDate,
		DurationSec:  in.DurationSec,
		CreatedAt:    in.CreatedAt,
	}
}

// NewInteractionResponses maps the history listing.
func NewInteractionResponses(interactions []domain.Interaction) []InteractionResponse {
	result := make([]InteractionResponse, 0, len(interactions))
	for i := range interactions {
		result = append(result, NewInteractionResponse(&interactions[i]))
	}
	return result
}
