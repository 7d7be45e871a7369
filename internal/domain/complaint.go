package domain

import (
	"strings"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending   ComplaintStatus = "Pending"
	ComplaintStatusAssigned  ComplaintStatus = "Assigned"
	ComplaintStatusCompleted ComplaintStatus = "Completed"
	ComplaintStatusEscalated ComplaintStatus = "Escalated"
)

// ParseComplaintStatus matches a status name case-insensitively.
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	for _, status := range []ComplaintStatus{
		ComplaintStatusPending,
		ComplaintStatusAssigned,
		ComplaintStatusCompleted,
		ComplaintStatusEscalated,
	} {
		if strings.EqualFold(strings.TrimSpace(raw), string(status)) {
			return status, true
		}
	}
	return "", false
}

// Priority enumerates derived urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority matches a priority name case-insensitively.
func ParsePriority(raw string) (Priority, bool) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Complaint is the aggregate for customer complaints.
type Complaint struct {
	ID                   int64
	Text                 string
	Category             string
	CreatedAt            time.Time
	Status               ComplaintStatus
	AssignedDepartmentID *int64
	ForwardedAt          *time.Time
	CompletedAt          *time.Time
	Priority             *Priority
	SLABreached          bool
	EscalatedAt          *time.Time
	CustomerID           *int64
	FeedbackProvided     bool
	Version              int64
	UpdatedAt            time.Time
}

// IsCompleted reports whether the complaint reached its terminal status.
func (c *Complaint) IsCompleted() bool {
	return c.Status == ComplaintStatusCompleted
}

// Forwarded reports whether the complaint was ever assigned to a department.
func (c *Complaint) Forwarded() bool {
	return c.AssignedDepartmentID != nil
}
