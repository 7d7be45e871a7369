package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// FeedbackRepository stores post-completion ratings.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByComplaint(ctx context.Context, complaintID int64) (*domain.Feedback, error)
	AverageRating(ctx context.Context) (*float64, error)
	Delete(ctx context.Context, id int64) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository builds repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (complaint_id, rating, comments, created_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		feedback.ComplaintID,
		feedback.Rating,
		feedback.Comments,
		feedback.CreatedAt,
	).Scan(&feedback.ID)
	return mapPgError(err)
}

func (r *feedbackRepository) GetByComplaint(ctx context.Context, complaintID int64) (*domain.Feedback, error) {
	const query = `
        SELECT id, complaint_id, rating, comments, created_at
        FROM feedback WHERE complaint_id=$1`
	var feedback domain.Feedback
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&feedback.ID,
		&feedback.ComplaintID,
		&feedback.Rating,
		&feedback.Comments,
		&feedback.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// AverageRating returns nil when no feedback exists.
func (r *feedbackRepository) AverageRating(ctx context.Context) (*float64, error) {
	var avg *float64
	if err := r.pool.QueryRow(ctx, `SELECT AVG(rating)::float8 FROM feedback`).Scan(&avg); err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
