package events

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated           EventType = "complaint_created"
	EventComplaintForwarded         EventType = "complaint_forwarded"
	EventComplaintCompleted         EventType = "complaint_completed"
	EventComplaintEscalated         EventType = "complaint_escalated"
	EventComplaintCategoryChanged   EventType = "complaint_category_changed"
	EventComplaintPriorityAssigned  EventType = "complaint_priority_assigned"
	EventComplaintFeedbackSubmitted EventType = "complaint_feedback_submitted"
	EventComplaintDeleted           EventType = "complaint_deleted"
)

// LifecycleEvents lists every event a complaint can emit.
var LifecycleEvents = []EventType{
	EventComplaintCreated,
	EventComplaintForwarded,
	EventComplaintCompleted,
	EventComplaintEscalated,
	EventComplaintCategoryChanged,
	EventComplaintPriorityAssigned,
	EventComplaintFeedbackSubmitted,
	EventComplaintDeleted,
}

// Actor identifies who triggered an event. A nil UserID means the system.
type Actor struct {
	UserID *int64      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID int64       `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Category   string `json:"category"`
	CustomerID *int64 `json:"customer_id,omitempty"`
}

// ComplaintForwardedPayload payload.
type ComplaintForwardedPayload struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Reassigned     bool   `json:"reassigned"`
	Notified       bool   `json:"notified"`
}

// ComplaintCompletedPayload payload.
type ComplaintCompletedPayload struct {
	Notified          bool `json:"notified"`
	FeedbackRequested bool `json:"feedback_requested"`
}

// ComplaintEscalatedPayload payload.
type ComplaintEscalatedPayload struct {
	PreviousStatus domain.ComplaintStatus `json:"previous_status"`
	Automatic      bool                   `json:"automatic"`
}

// ComplaintCategoryChangedPayload payload.
type ComplaintCategoryChangedPayload struct {
	OldCategory string `json:"old_category"`
	NewCategory string `json:"new_category"`
}

// ComplaintPriorityAssignedPayload payload.
type ComplaintPriorityAssignedPayload struct {
	Priority domain.Priority `json:"priority"`
	Reason   string          `json:"reason"`
}

// ComplaintFeedbackSubmittedPayload payload.
type ComplaintFeedbackSubmittedPayload struct {
	Rating int `json:"rating"`
}
