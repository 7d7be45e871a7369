package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/classifier"
	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/notification"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// ComplaintService is the lifecycle engine: intake, forwarding, completion,
// escalation and the priority pass.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
	notes       repository.CaseNoteRepository
	classifier  classifier.Classifier
	notifier    notification.Sink
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	lifecycle   config.LifecycleConfig
	mail        config.MailConfig
	now         func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	DepartmentRepo repository.DepartmentRepository
	UserRepo       repository.UserRepository
	NoteRepo       repository.CaseNoteRepository
	Classifier     classifier.Classifier
	Notifier       notification.Sink
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	Lifecycle      config.LifecycleConfig
	Mail           config.MailConfig
	// Now defaults to time.Now.
	Now func() time.Time
}

// ForwardResult reports a forwarding transition.
type ForwardResult struct {
	Complaint   *domain.Complaint
	ForwardedAt time.Time
	Notified    bool
}

// CompleteResult reports a completion transition.
type CompleteResult struct {
	Complaint         *domain.Complaint
	CompletedAt       time.Time
	Notified          bool
	FeedbackRequested bool
}

// EscalateResult reports a manual escalation.
type EscalateResult struct {
	Complaint   *domain.Complaint
	EscalatedAt time.Time
	Notified    bool
}

// UpdateResult reports the combined department/status update.
type UpdateResult struct {
	Complaint *domain.Complaint
	Notified  bool
}

// SLAResult summarises one SLA sweep.
type SLAResult struct {
	EscalatedCount int
	Notified       int
}

// PriorityResult summarises one priority pass.
type PriorityResult struct {
	UpdatedCount int
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		departments: deps.DepartmentRepo,
		users:       deps.UserRepo,
		notes:       deps.NoteRepo,
		classifier:  deps.Classifier,
		notifier:    deps.Notifier,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
		lifecycle:   deps.Lifecycle,
		mail:        deps.Mail,
		now:         now,
	}
}

// Classify previews the category for text without storing anything.
func (s *ComplaintService) Classify(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewValidationError("complaint text is required", map[string]any{"field": "text"})
	}
	if s.classifier == nil {
		return "", apperrors.NewModelUnavailable(classifier.ErrModelUnavailable)
	}
	label, err := s.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, classifier.ErrModelUnavailable) {
			return "", apperrors.NewModelUnavailable(err)
		}
		return "", apperrors.MapError(err)
	}
	s.metrics.RecordClassification(label)
	return label, nil
}

// Create classifies and stores a new complaint.
func (s *ComplaintService) Create(ctx context.Context, text string, customerID *int64) (*domain.Complaint, error) {
	category, err := s.Classify(ctx, text)
	if err != nil {
		return nil, err
	}
	complaint := &domain.Complaint{
		Text:       strings.TrimSpace(text),
		Category:   category,
		CreatedAt:  s.now(),
		Status:     domain.ComplaintStatusPending,
		CustomerID: customerID,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, translate(err, "customer", nil)
	}
	s.metrics.RecordTransition("create", 1)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Payload: events.ComplaintCreatedPayload{
			Category:   complaint.Category,
			CustomerID: complaint.CustomerID,
		},
	})
	return complaint, nil
}

// Get returns one complaint.
func (s *ComplaintService) Get(ctx context.Context, id int64) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
	}
	return complaint, nil
}

// List returns complaints newest first.
func (s *ComplaintService) List(ctx context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// Forward assigns the complaint to a department and notifies it.
func (s *ComplaintService) Forward(ctx context.Context, id, departmentID int64) (*ForwardResult, error) {
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result, _, err := s.forward(ctx, complaint, departmentID, true)
	return result, err
}

// forward moves complaint to Assigned. When alwaysNotify is false only the
// first assignment notifies the department.
func (s *ComplaintService) forward(ctx context.Context, complaint *domain.Complaint, departmentID int64, alwaysNotify bool) (*ForwardResult, bool, error) {
	if complaint.IsCompleted() {
		return nil, false, apperrors.NewInvalidTransition("completed complaints cannot be forwarded",
			map[string]any{"complaint_id": complaint.ID, "status": complaint.Status})
	}
	dept, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return nil, false, translate(err, "department", map[string]any{"department_id": departmentID})
	}

	firstAssignment := !complaint.Forwarded()
	forwardedAt := s.now()
	status := domain.ComplaintStatusAssigned
	updated, err := s.complaints.Update(ctx, complaint.ID, complaint.Version, repository.ComplaintPatch{
		Status:               &status,
		AssignedDepartmentID: &dept.ID,
		ForwardedAt:          &forwardedAt,
	})
	if err != nil {
		return nil, false, translate(err, "complaint", map[string]any{"complaint_id": complaint.ID})
	}

	notified := false
	if alwaysNotify || firstAssignment {
		notified = s.notify(ctx, dept.Email, notification.KindForward, s.notificationData(updated, dept.Name))
	}
	s.metrics.RecordTransition("forward", 1)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintForwarded,
		ComplaintID: updated.ID,
		Payload: events.ComplaintForwardedPayload{
			DepartmentID:   dept.ID,
			DepartmentName: dept.Name,
			Reassigned:     !firstAssignment,
			Notified:       notified,
		},
	})
	return &ForwardResult{Complaint: updated, ForwardedAt: forwardedAt, Notified: notified}, firstAssignment, nil
}

// Complete closes the complaint, notifies the department and asks the
// customer for feedback.
func (s *ComplaintService) Complete(ctx context.Context, id int64) (*CompleteResult, error) {
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint.IsCompleted() {
		return nil, apperrors.NewInvalidTransition("complaint is already completed",
			map[string]any{"complaint_id": id, "completed_at": complaint.CompletedAt})
	}
	if !complaint.Forwarded() {
		return nil, apperrors.NewInvalidTransition("complaint must be forwarded to a department before completion",
			map[string]any{"complaint_id": id, "status": complaint.Status})
	}

	completedAt := s.now()
	if completedAt.Before(complaint.CreatedAt) {
		completedAt = complaint.CreatedAt
	}
	status := domain.ComplaintStatusCompleted
	updated, err := s.complaints.Update(ctx, id, complaint.Version, repository.ComplaintPatch{
		Status:      &status,
		CompletedAt: &completedAt,
	})
	if err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
	}

	result := &CompleteResult{Complaint: updated, CompletedAt: completedAt}
	deptName := ""
	if dept, err := s.departments.GetByID(ctx, *updated.AssignedDepartmentID); err == nil {
		deptName = dept.Name
		result.Notified = s.notify(ctx, dept.Email, notification.KindCompletion, s.notificationData(updated, dept.Name))
	} else {
		s.logger.Warn("completion notification skipped: department unavailable",
			zap.Int64("complaint_id", id),
			zap.Int64("department_id", *updated.AssignedDepartmentID),
			zap.Error(err))
	}
	if email := s.customerEmail(ctx, updated); email != "" {
		data := s.notificationData(updated, deptName)
		data.FeedbackURL = s.feedbackURL(updated.ID)
		result.FeedbackRequested = s.notify(ctx, email, notification.KindFeedbackRequest, data)
	}

	s.metrics.RecordTransition("complete", 1)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCompleted,
		ComplaintID: id,
		Payload: events.ComplaintCompletedPayload{
			Notified:          result.Notified,
			FeedbackRequested: result.FeedbackRequested,
		},
	})
	return result, nil
}

// Escalate manually flags an open complaint as breaching its SLA.
func (s *ComplaintService) Escalate(ctx context.Context, id int64) (*EscalateResult, error) {
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint.Status != domain.ComplaintStatusPending && complaint.Status != domain.ComplaintStatusAssigned {
		return nil, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot escalate a complaint in status %s", complaint.Status),
			map[string]any{"complaint_id": id, "status": complaint.Status})
	}
	updated, escalatedAt, err := s.escalate(ctx, complaint, false)
	if err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
	}
	notified := s.notifyEscalation(ctx, updated)
	return &EscalateResult{Complaint: updated, EscalatedAt: escalatedAt, Notified: notified}, nil
}

func (s *ComplaintService) escalate(ctx context.Context, complaint *domain.Complaint, automatic bool) (*domain.Complaint, time.Time, error) {
	escalatedAt := s.now()
	status := domain.ComplaintStatusEscalated
	breached := true
	updated, err := s.complaints.Update(ctx, complaint.ID, complaint.Version, repository.ComplaintPatch{
		Status:      &status,
		SLABreached: &breached,
		EscalatedAt: &escalatedAt,
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	s.metrics.RecordTransition("escalate", 1)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintEscalated,
		ComplaintID: complaint.ID,
		Payload: events.ComplaintEscalatedPayload{
			PreviousStatus: complaint.Status,
			Automatic:      automatic,
		},
	})
	return updated, escalatedAt, nil
}

func (s *ComplaintService) notifyEscalation(ctx context.Context, complaint *domain.Complaint) bool {
	address := strings.TrimSpace(s.mail.EscalationEmail)
	if address == "" {
		return false
	}
	deptName := ""
	if complaint.AssignedDepartmentID != nil {
		if dept, err := s.departments.GetByID(ctx, *complaint.AssignedDepartmentID); err == nil {
			deptName = dept.Name
		}
	}
	return s.notify(ctx, address, notification.KindSLAEscalation, s.notificationData(complaint, deptName))
}

// ComplaintUpdate is the combined edit accepted by Apply. Nil fields are left unchanged.
type ComplaintUpdate struct {
	DepartmentID *int64
	Status       *string
	Category     *string
}

// Apply checks every part of a combined edit before writing any of it, then
// applies the category correction followed by the department and status change.
func (s *ComplaintService) Apply(ctx context.Context, id int64, update ComplaintUpdate) (*UpdateResult, error) {
	if update.DepartmentID == nil && update.Category == nil && isBlank(update.Status) {
		return nil, apperrors.NewValidationError("no updates provided", nil)
	}
	target, err := parseTargetStatus(update.Status)
	if err != nil {
		return nil, err
	}
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUpdate(ctx, complaint, update.DepartmentID, target, update.Category); err != nil {
		return nil, err
	}

	if update.Category != nil {
		if complaint, err = s.SetCategory(ctx, id, *update.Category); err != nil {
			return nil, err
		}
	}
	if update.DepartmentID == nil && target == "" {
		return &UpdateResult{Complaint: complaint}, nil
	}
	return s.UpdateStatus(ctx, id, update.DepartmentID, update.Status)
}

// UpdateStatus applies an optional department assignment followed by an
// optional status change, each through the regular transition rules.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int64, departmentID *int64, rawStatus *string) (*UpdateResult, error) {
	if departmentID == nil && isBlank(rawStatus) {
		return nil, apperrors.NewValidationError("no updates provided", nil)
	}
	target, err := parseTargetStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUpdate(ctx, complaint, departmentID, target, nil); err != nil {
		return nil, err
	}
	result := &UpdateResult{Complaint: complaint}

	if departmentID != nil {
		forwarded, _, err := s.forward(ctx, complaint, *departmentID, false)
		if err != nil {
			return nil, err
		}
		result.Complaint = forwarded.Complaint
		result.Notified = forwarded.Notified
	}

	switch target {
	case "":
	case domain.ComplaintStatusAssigned:
		current := result.Complaint
		if current.Status == domain.ComplaintStatusAssigned {
			break
		}
		if current.IsCompleted() {
			return nil, apperrors.NewInvalidTransition("completed complaints cannot be reopened",
				map[string]any{"complaint_id": id})
		}
		if !current.Forwarded() {
			return nil, apperrors.NewValidationError("status Assigned requires a department",
				map[string]any{"field": "department_id"})
		}
		status := domain.ComplaintStatusAssigned
		updated, err := s.complaints.Update(ctx, id, current.Version, repository.ComplaintPatch{Status: &status})
		if err != nil {
			return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
		}
		result.Complaint = updated
	case domain.ComplaintStatusCompleted:
		completed, err := s.Complete(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Complaint = completed.Complaint
		result.Notified = result.Notified || completed.Notified
	case domain.ComplaintStatusEscalated:
		escalated, err := s.Escalate(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Complaint = escalated.Complaint
		result.Notified = result.Notified || escalated.Notified
	}
	return result, nil
}

func isBlank(raw *string) bool {
	return raw == nil || strings.TrimSpace(*raw) == ""
}

// parseTargetStatus returns "" when no status was requested.
func parseTargetStatus(raw *string) (domain.ComplaintStatus, error) {
	if isBlank(raw) {
		return "", nil
	}
	target, ok := domain.ParseComplaintStatus(*raw)
	if !ok {
		return "", apperrors.NewValidationError("unknown status", map[string]any{"status": *raw})
	}
	if target == domain.ComplaintStatusPending {
		return "", apperrors.NewInvalidTransition("complaints cannot move back to Pending", nil)
	}
	return target, nil
}

// checkUpdate rejects a combined edit that would fail part-way, so no step is
// written when a later one is invalid. Only storage errors and version races
// can still interrupt the writes.
func (s *ComplaintService) checkUpdate(ctx context.Context, c *domain.Complaint, departmentID *int64, target domain.ComplaintStatus, category *string) error {
	details := map[string]any{"complaint_id": c.ID, "status": c.Status}
	if category != nil {
		if strings.TrimSpace(*category) == "" {
			return apperrors.NewValidationError("category is required", map[string]any{"field": "category"})
		}
		if c.IsCompleted() {
			return apperrors.NewInvalidTransition("completed complaints cannot be recategorised", details)
		}
	}
	if departmentID != nil {
		if c.IsCompleted() {
			return apperrors.NewInvalidTransition("completed complaints cannot be forwarded", details)
		}
		if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
			return translate(err, "department", map[string]any{"department_id": *departmentID})
		}
	}
	assigned := c.Forwarded() || departmentID != nil
	switch target {
	case domain.ComplaintStatusAssigned:
		if c.IsCompleted() {
			return apperrors.NewInvalidTransition("completed complaints cannot be reopened", details)
		}
		if !assigned {
			return apperrors.NewValidationError("status Assigned requires a department",
				map[string]any{"field": "department_id"})
		}
	case domain.ComplaintStatusCompleted:
		if c.IsCompleted() {
			return apperrors.NewInvalidTransition("complaint is already completed", details)
		}
		if !assigned {
			return apperrors.NewInvalidTransition("complaint must be forwarded to a department before completion", details)
		}
	case domain.ComplaintStatusEscalated:
		// A department in the same edit moves the complaint to Assigned first.
		if departmentID == nil && c.Status != domain.ComplaintStatusPending && c.Status != domain.ComplaintStatusAssigned {
			return apperrors.NewInvalidTransition(
				fmt.Sprintf("cannot escalate a complaint in status %s", c.Status), details)
		}
	}
	return nil
}

// SetCategory corrects the category of an open complaint.
func (s *ComplaintService) SetCategory(ctx context.Context, id int64, category string) (*domain.Complaint, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.NewValidationError("category is required", map[string]any{"field": "category"})
	}
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint.IsCompleted() {
		return nil, apperrors.NewInvalidTransition("completed complaints cannot be recategorised",
			map[string]any{"complaint_id": id})
	}
	if complaint.Category == category {
		return complaint, nil
	}
	updated, err := s.complaints.Update(ctx, id, complaint.Version, repository.ComplaintPatch{Category: &category})
	if err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCategoryChanged,
		ComplaintID: id,
		Payload: events.ComplaintCategoryChangedPayload{
			OldCategory: complaint.Category,
			NewCategory: category,
		},
	})
	return updated, nil
}

// Delete removes a complaint together with its feedback and notes.
func (s *ComplaintService) Delete(ctx context.Context, id int64) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		return translate(err, "complaint", map[string]any{"complaint_id": id})
	}
	s.metrics.RecordTransition("delete", 1)
	s.publishEvent(ctx, events.Event{Type: events.EventComplaintDeleted, ComplaintID: id})
	return nil
}

// CheckSLA escalates every open complaint older than the SLA window.
func (s *ComplaintService) CheckSLA(ctx context.Context) (*SLAResult, error) {
	cutoff := s.now().Add(-s.lifecycle.SLAWindow())
	overdue, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		Statuses:      []domain.ComplaintStatus{domain.ComplaintStatusPending, domain.ComplaintStatusAssigned},
		CreatedBefore: &cutoff,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &SLAResult{}
	for i := range overdue {
		complaint := &overdue[i]
		updated, _, err := s.escalate(ctx, complaint, true)
		if err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				s.logger.Info("sla sweep skipped complaint changed concurrently", zap.Int64("complaint_id", complaint.ID))
				continue
			}
			return result, apperrors.MapError(err)
		}
		result.EscalatedCount++
		s.logger.Warn("complaint escalated after SLA breach",
			zap.Int64("complaint_id", complaint.ID),
			zap.Time("created_at", complaint.CreatedAt))
		if s.notifyEscalation(ctx, updated) {
			result.Notified++
		}
	}
	return result, nil
}

// AssignPriorities derives a priority for every complaint that has none.
func (s *ComplaintService) AssignPriorities(ctx context.Context) (*PriorityResult, error) {
	pending, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{Unprioritised: true})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &PriorityResult{}
	for _, complaint := range pending {
		priority, reason := DerivePriority(complaint.Text, complaint.Category)
		if _, err := s.complaints.Update(ctx, complaint.ID, complaint.Version, repository.ComplaintPatch{Priority: &priority}); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return result, apperrors.MapError(err)
		}
		result.UpdatedCount++
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintPriorityAssigned,
			ComplaintID: complaint.ID,
			Payload:     events.ComplaintPriorityAssignedPayload{Priority: priority, Reason: reason},
		})
	}
	s.metrics.RecordTransition("prioritise", result.UpdatedCount)
	return result, nil
}

// AddNote appends to the complaint's case log.
func (s *ComplaintService) AddNote(ctx context.Context, id int64, authorID *int64, text string, internal bool) (*domain.CaseNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("note text is required", map[string]any{"field": "text"})
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	note := &domain.CaseNote{ComplaintID: id, AuthorID: authorID, Text: text, IsInternal: internal}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": id})
	}
	return note, nil
}

// ListNotes returns the case log oldest first.
func (s *ComplaintService) ListNotes(ctx context.Context, id int64) ([]domain.CaseNote, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByComplaint(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notes, nil
}

func (s *ComplaintService) notify(ctx context.Context, address string, kind notification.Kind, data notification.Data) bool {
	if s.notifier == nil {
		return false
	}
	delivered := s.notifier.Notify(ctx, address, kind, data)
	if !delivered {
		s.logger.Warn("notification not delivered",
			zap.String("kind", string(kind)),
			zap.Int64("complaint_id", data.ComplaintID))
	}
	return delivered
}

func (s *ComplaintService) notificationData(c *domain.Complaint, departmentName string) notification.Data {
	return notification.Data{
		ComplaintID:    c.ID,
		Text:           c.Text,
		Category:       c.Category,
		Status:         string(c.Status),
		DepartmentName: departmentName,
		CreatedAt:      c.CreatedAt,
		CompletedAt:    c.CompletedAt,
		SLAWindowHours: int(s.lifecycle.SLAWindow() / time.Hour),
	}
}

func (s *ComplaintService) customerEmail(ctx context.Context, c *domain.Complaint) string {
	if c.CustomerID == nil || s.users == nil {
		return ""
	}
	user, err := s.users.GetByID(ctx, *c.CustomerID)
	if err != nil {
		s.logger.Warn("feedback request skipped: customer unavailable",
			zap.Int64("complaint_id", c.ID), zap.Error(err))
		return ""
	}
	return user.Email
}

func (s *ComplaintService) feedbackURL(id int64) string {
	return fmt.Sprintf("%s/complaints/%d/feedback", strings.TrimRight(s.mail.FeedbackBaseURL, "/"), id)
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.now, event)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, now func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	event.Actor = ActorFromContext(ctx)
	_ = dispatcher.Publish(ctx, event)
}
