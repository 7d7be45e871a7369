package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

func TestFeedbackRules(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	dept := h.department(t, "Tech", "tech@x.com")
	c := h.complaint(t, "slow", nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := h.feedback.Submit(ctx, c.ID, rating, "")
		assert.True(t, apperrors.IsValidation(err), rating)
	}

	_, err := h.feedback.Submit(ctx, 77, 3, "")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = h.feedback.Submit(ctx, c.ID, 3, "")
	assert.True(t, apperrors.IsInvalidTransition(err))

	_, err = h.feedback.Get(ctx, c.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = h.complaints.Forward(ctx, c.ID, dept.ID)
	require.NoError(t, err)
	_, err = h.complaints.Complete(ctx, c.ID)
	require.NoError(t, err)

	fb, err := h.feedback.Submit(ctx, c.ID, 5, "  great  ")
	require.NoError(t, err)
	assert.Equal(t, "great", fb.Comments)

	_, err = h.feedback.Submit(ctx, c.ID, 1, "changed my mind")
	assert.True(t, apperrors.IsConflict(err))

	got, err := h.feedback.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
}

// flagFailingComplaints rejects the feedback_provided write.
type flagFailingComplaints struct {
	repository.ComplaintRepository
	fail bool
}

func (f *flagFailingComplaints) Update(ctx context.Context, id, expectedVersion int64, patch repository.ComplaintPatch) (*domain.Complaint, error) {
	if f.fail && patch.FeedbackProvided != nil {
		return nil, errors.New("connection reset")
	}
	return f.ComplaintRepository.Update(ctx, id, expectedVersion, patch)
}

func TestFeedbackRolledBackWhenFlagWriteFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	dept := h.department(t, "Tech", "tech@x.com")
	c := h.complaint(t, "slow", nil)
	_, err := h.complaints.Forward(ctx, c.ID, dept.ID)
	require.NoError(t, err)
	_, err = h.complaints.Complete(ctx, c.ID)
	require.NoError(t, err)

	complaints := &flagFailingComplaints{ComplaintRepository: h.store.Complaints, fail: true}
	svc := NewFeedbackService(FeedbackDependencies{
		FeedbackRepo:  h.store.Feedback,
		ComplaintRepo: complaints,
		Dispatcher:    h.dispatcher,
		Now:           h.clock.Now,
	})

	_, err = svc.Submit(ctx, c.ID, 4, "ok")
	require.Error(t, err)
	_, err = h.store.Feedback.GetByComplaint(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	complaints.fail = false
	fb, err := svc.Submit(ctx, c.ID, 4, "ok")
	require.NoError(t, err)
	assert.Equal(t, 4, fb.Rating)

	stored, err := h.store.Complaints.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.FeedbackProvided)
}
