package memory

import (
	"context"
	"fmt"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

type feedbackRepository struct {
	db *db
}

func (r *feedbackRepository) Create(_ context.Context, feedback *domain.Feedback) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.complaints[feedback.ComplaintID]; !ok {
		return fmt.Errorf("%w: feedback_complaint_id_fkey", repository.ErrReferenced)
	}
	for _, existing := range r.db.feedback {
		if existing.ComplaintID == feedback.ComplaintID {
			return fmt.Errorf("%w: feedback_complaint_id_key", repository.ErrDuplicate)
		}
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = r.db.now()
	}
	r.db.feedbackSeq++
	feedback.ID = r.db.feedbackSeq
	r.db.feedback[feedback.ID] = *feedback
	return nil
}

func (r *feedbackRepository) GetByComplaint(_ context.Context, complaintID int64) (*domain.Feedback, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, fb := range r.db.feedback {
		if fb.ComplaintID == complaintID {
			out := fb
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *feedbackRepository) AverageRating(_ context.Context) (*float64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if len(r.db.feedback) == 0 {
		return nil, nil
	}
	total := 0
	for _, fb := range r.db.feedback {
		total += fb.Rating
	}
	avg := float64(total) / float64(len(r.db.feedback))
	return &avg, nil
}

func (r *feedbackRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.feedback[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.feedback, id)
	return nil
}
