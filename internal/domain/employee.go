package domain

import "time"

// Role enumerates operator roles. Comparison is case-insensitive at the
// authorization boundary; storage is canonical upper-case.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleAgent   Role = "AGENT"
	RoleTrainee Role = "TRAINEE"
)

// EmployeeStatus represents lifecycle states for an employee account.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

// Employee models a call-center operator or administrator. PasswordHash is
// never serialized to clients.
type Employee struct {
	ID                int64
	Code              string
	Name              string
	Username          string
	Email             string
	PasswordHash      string
	Role              Role
	Capacity          int
	Phone             *string
	Address           *string
	Remarks           *string
	Status            EmployeeStatus
	AssignedProjectID *int64
	JoinDate          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
