package dto

import (
	"time"

	"github.com/spec-kit/callcenter-service/internal/domain"
)

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Code      string  `json:"code" validate:"required"`
	ProjectID *int64  `json:"project_id"`
	Name      string  `json:"name" validate:"required"`
	Mobile    *string `json:"mobile"`
	Email     *string `json:"email" validate:"omitempty,email"`
	SocialID  *string `json:"social_id"`
	Address   *string `json:"address"`
	Remarks   *string `json:"remarks"`
}

// CustomerResponse is the wire shape for one customer.
type CustomerResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	ProjectID   *int64    `json:"project_id"`
	ProjectName *string   `json:"project_name,omitempty"`
	ProjectCode *string   `json:"project_code,omitempty"`
	Name        string    `json:"name"`
	Mobile      *string   `json:"mobile"`
	Email       *string   `json:"email"`
	SocialID    *string   `json:"social_id"`
	Address     *string   `json:"address"`
	Remarks     *string   `json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		ProjectID:   c.ProjectID,
		ProjectName: c.ProjectName,
		ProjectCode: c.ProjectCode,
		Name:        c.Name,
		Mobile:      c.Mobile,
		Email:       c.Email,
		SocialID:    c.SocialID,
		Address:     c.Address,
		Remarks:     c.Remarks,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewCustomerResponses maps a listing page.
func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	result := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, NewCustomerResponse(&customers[i]))
	}
	return result
}
