package domain

import "time"

// Customer is a contact profile scoped to one project.
type Customer struct {
	ID        int64
	Code      string
	ProjectID *int64
	Name      string
	Mobile    *string
	Email     *string
	SocialID  *string
	Address   *string
	Remarks   *string
	CreatedBy *int64
	UpdatedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// joined project columns for listings
	ProjectName *string
	ProjectCode *string
}
