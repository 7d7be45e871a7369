package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

// AuditService turns lifecycle events into system case notes.
type AuditService struct {
	dispatcher events.Dispatcher
	notes      repository.CaseNoteRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, notes repository.CaseNoteRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{dispatcher: dispatcher, notes: notes, logger: logger}
}

// RegisterHandlers subscribes to every lifecycle event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	events.SubscribeAll(a.dispatcher, events.LifecycleEvents, a.handle)
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.Any("payload", event.Payload))

	if event.Type == events.EventComplaintDeleted {
		return nil
	}
	return a.notes.Create(ctx, &domain.CaseNote{
		ComplaintID: event.ComplaintID,
		Text:        describe(event),
		IsInternal:  true,
	})
}

func describe(event events.Event) string {
	text := string(event.Type)
	switch p := event.Payload.(type) {
	case events.ComplaintCreatedPayload:
		text = fmt.Sprintf("Complaint received and classified as %s", p.Category)
	case events.ComplaintForwardedPayload:
		verb := "Forwarded"
		if p.Reassigned {
			verb = "Reassigned"
		}
		text = fmt.Sprintf("%s to %s (notified: %t)", verb, p.DepartmentName, p.Notified)
	case events.ComplaintCompletedPayload:
		text = fmt.Sprintf("Marked completed (department notified: %t, feedback requested: %t)", p.Notified, p.FeedbackRequested)
	case events.ComplaintEscalatedPayload:
		if p.Automatic {
			text = fmt.Sprintf("Escalated by SLA sweep from %s", p.PreviousStatus)
		} else {
			text = fmt.Sprintf("Escalated manually from %s", p.PreviousStatus)
		}
	case events.ComplaintCategoryChangedPayload:
		text = fmt.Sprintf("Category changed from %s to %s", p.OldCategory, p.NewCategory)
	case events.ComplaintPriorityAssignedPayload:
		text = fmt.Sprintf("Priority set to %s (%s)", p.Priority, p.Reason)
	case events.ComplaintFeedbackSubmittedPayload:
		text = fmt.Sprintf("Customer feedback received: %d/5", p.Rating)
	}
	if event.Actor.UserID != nil {
		text += fmt.Sprintf(" by user %d", *event.Actor.UserID)
	}
	return text
}
