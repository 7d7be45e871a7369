package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

const feedbackFlagAttempts = 3

// FeedbackService records post-completion ratings.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// FeedbackDependencies bundles collaborators for the feedback service.
type FeedbackDependencies struct {
	FeedbackRepo  repository.FeedbackRepository
	ComplaintRepo repository.ComplaintRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Now           func() time.Time
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		feedback:   deps.FeedbackRepo,
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// Submit stores the single feedback allowed for a completed complaint.
func (s *FeedbackService) Submit(ctx context.Context, complaintID int64, rating int, comments string) (*domain.Feedback, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5",
			map[string]any{"field": "rating", "value": rating})
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, translate(err, "complaint", map[string]any{"complaint_id": complaintID})
	}
	if !complaint.IsCompleted() {
		return nil, apperrors.NewInvalidTransition("feedback requires a completed complaint",
			map[string]any{"complaint_id": complaintID, "status": complaint.Status})
	}
	if complaint.FeedbackProvided {
		return nil, apperrors.NewConflict("feedback already submitted", map[string]any{"complaint_id": complaintID})
	}

	fb := &domain.Feedback{
		ComplaintID: complaintID,
		Rating:      rating,
		Comments:    strings.TrimSpace(comments),
		CreatedAt:   s.now(),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("feedback already submitted", map[string]any{"complaint_id": complaintID})
		}
		return nil, translate(err, "complaint", map[string]any{"complaint_id": complaintID})
	}
	if err := s.markProvided(ctx, complaint); err != nil {
		// Drop the row so a retry is not rejected as a duplicate.
		if delErr := s.feedback.Delete(context.WithoutCancel(ctx), fb.ID); delErr != nil {
			s.logger.Error("feedback rollback failed",
				zap.Int64("complaint_id", complaintID),
				zap.Int64("feedback_id", fb.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventComplaintFeedbackSubmitted,
		ComplaintID: complaintID,
		Payload:     events.ComplaintFeedbackSubmittedPayload{Rating: rating},
	})
	return fb, nil
}

// markProvided sets the monotonic flag, re-reading on version races.
func (s *FeedbackService) markProvided(ctx context.Context, complaint *domain.Complaint) error {
	provided := true
	for attempt := 0; attempt < feedbackFlagAttempts; attempt++ {
		_, err := s.complaints.Update(ctx, complaint.ID, complaint.Version, repository.ComplaintPatch{FeedbackProvided: &provided})
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return translate(err, "complaint", map[string]any{"complaint_id": complaint.ID})
		}
		fresh, err := s.complaints.GetByID(ctx, complaint.ID)
		if err != nil {
			return translate(err, "complaint", map[string]any{"complaint_id": complaint.ID})
		}
		complaint = fresh
	}
	return translate(repository.ErrVersionConflict, "complaint", map[string]any{"complaint_id": complaint.ID})
}

// Get returns the feedback stored for a complaint.
func (s *FeedbackService) Get(ctx context.Context, complaintID int64) (*domain.Feedback, error) {
	fb, err := s.feedback.GetByComplaint(ctx, complaintID)
	if err != nil {
		return nil, translate(err, "feedback", map[string]any{"complaint_id": complaintID})
	}
	return fb, nil
}
