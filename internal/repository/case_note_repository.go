package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// CaseNoteRepository stores the append-only case log.
type CaseNoteRepository interface {
	Create(ctx context.Context, note *domain.CaseNote) error
	ListByComplaint(ctx context.Context, complaintID int64) ([]domain.CaseNote, error)
}

type caseNoteRepository struct {
	pool *pgxpool.Pool
}

// NewCaseNoteRepository builds repository.
func NewCaseNoteRepository(pool *pgxpool.Pool) CaseNoteRepository {
	return &caseNoteRepository{pool: pool}
}

func (r *caseNoteRepository) Create(ctx context.Context, note *domain.CaseNote) error {
	const query = `
        INSERT INTO case_notes (complaint_id, author_id, note_text, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		note.ComplaintID,
		note.AuthorID,
		note.Text,
		note.IsInternal,
	).Scan(&note.ID, &note.CreatedAt)
	return mapPgError(err)
}

func (r *caseNoteRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.CaseNote, error) {
	const query = `
        SELECT id, complaint_id, author_id, note_text, is_internal, created_at
        FROM case_notes WHERE complaint_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseNote
	for rows.Next() {
		var note domain.CaseNote
		if err := rows.Scan(
			&note.ID,
			&note.ComplaintID,
			&note.AuthorID,
			&note.Text,
			&note.IsInternal,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
