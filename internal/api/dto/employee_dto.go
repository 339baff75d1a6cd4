package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// CreateEmployeeRequest payload. Password hashes never appear in responses.
type CreateEmployeeRequest struct {
	Code              string     `json:"code" validate:"required"`
	Name              string     `json:"name" validate:"required"`
	Username          string     `json:"username" validate:"required"`
	Email             string     `json:"email" validate:"required,email"`
	Password          string     `json:"password" validate:"required,min=8"`
	Role              string     `json:"role" validate:"omitempty,oneof=ADMIN MANAGER AGENT TRAINEE"`
	Capacity          int        `json:"capacity" validate:"gte=0"`
	Phone             *string    `json:"phone"`
	Address           *string    `json:"address"`
	Remarks           *string    `json:"remarks"`
	Status            string     `json:"status" validate:"omitempty,oneof=Active Inactive"`
	AssignedProjectID *int64     `json:"assigned_project_id"`
	JoinDate          *time.Time `json:"join_date"`
}

// SetEmployeeStatusRequest payload for the activate/inactivate toggle.
type SetEmployeeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Inactive"`
}

// EmployeeResponse is the wire shape for one employee.
type EmployeeResponse struct {
	ID                int64     `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Capacity          int       `json:"capacity"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	Remarks           *string   `json:"remarks"`
	Status            string    `json:"status"`
	AssignedProjectID *int64    `json:"assigned_project_id"`
	JoinDate          time.Time `json:"join_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		Code:              e.Code,
		Name:              e.Name,
		Username:          e.Username,
		Email:             e.Email,
		Role:              string(e.Role),
		Capacity:          e.Capacity,
		Phone:             e.Phone,
		Address:           e.Address,
		Remarks:           e.Remarks,
		Status:            string(e.Status),
		AssignedProjectID: e.AssignedProjectID,
		JoinDate:          e.JoinDate,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// NewEmployeeResponses maps a listing page.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, NewEmployeeResponse(&employees[i]))
	}
	return result
}
