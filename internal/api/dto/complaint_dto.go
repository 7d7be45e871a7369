package dto

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// ClassifyRequest payload.
type ClassifyRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// ForwardRequest payload.
type ForwardRequest struct {
	DepartmentID int64 `json:"department_id" validate:"required,gt=0"`
}

// UpdateComplaintRequest payload for the combined update.
type UpdateComplaintRequest struct {
	DepartmentID *int64  `json:"department_id" validate:"omitempty,gt=0"`
	Status       *string `json:"status"`
	Category     *string `json:"category"`
}

// NoteRequest payload.
type NoteRequest struct {
	Text     string `json:"text" validate:"required"`
	Internal *bool  `json:"internal"`
}

// FeedbackRequest payload.
type FeedbackRequest struct {
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Comments string `json:"comments" validate:"max=2000"`
}

// ComplaintResponse renders a complaint.
type ComplaintResponse struct {
	ID                   int64                  `json:"id"`
	Text                 string                 `json:"text"`
	Category             string                 `json:"category"`
	Status               domain.ComplaintStatus `json:"status"`
	Priority             *domain.Priority       `json:"priority"`
	AssignedDepartmentID *int64                 `json:"assigned_department_id"`
	CustomerID           *int64                 `json:"customer_id,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	ForwardedAt          *time.Time             `json:"forwarded_at"`
	CompletedAt          *time.Time             `json:"completed_at"`
	SLABreached          bool                   `json:"sla_breached"`
	EscalatedAt          *time.Time             `json:"escalated_at"`
	FeedbackProvided     bool                   `json:"feedback_provided"`
	Version              int64                  `json:"version"`
}

// NewComplaintResponse maps the domain type.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:                   c.ID,
		Text:                 c.Text,
		Category:             c.Category,
		Status:               c.Status,
		Priority:             c.Priority,
		AssignedDepartmentID: c.AssignedDepartmentID,
		CustomerID:           c.CustomerID,
		CreatedAt:            c.CreatedAt,
		ForwardedAt:          c.ForwardedAt,
		CompletedAt:          c.CompletedAt,
		SLABreached:          c.SLABreached,
		EscalatedAt:          c.EscalatedAt,
		FeedbackProvided:     c.FeedbackProvided,
		Version:              c.Version,
	}
}

// NoteResponse renders a case note.
type NoteResponse struct {
	ID         int64     `json:"id"`
	AuthorID   *int64    `json:"author_id"`
	Text       string    `json:"text"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNoteResponse maps the domain type.
func NewNoteResponse(n *domain.CaseNote) NoteResponse {
	return NoteResponse{ID: n.ID, AuthorID: n.AuthorID, Text: n.Text, IsInternal: n.IsInternal, CreatedAt: n.CreatedAt}
}

// FeedbackResponse renders feedback.
type FeedbackResponse struct {
	ID          int64     `json:"id"`
	ComplaintID int64     `json:"complaint_id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFeedbackResponse maps the domain type.
func NewFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{ID: f.ID, ComplaintID: f.ComplaintID, Rating: f.Rating, Comments: f.Comments, CreatedAt: f.CreatedAt}
}
