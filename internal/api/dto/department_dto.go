package dto

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=200"`
	Email       string `json:"email" yaml:"email" validate:"required,email"`
	Description string `json:"description" yaml:"description"`
}

// DepartmentResponse renders a department.
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDepartmentResponse maps the domain type.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, Email: d.Email, Description: d.Description, CreatedAt: d.CreatedAt}
}
