package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// ComplaintFilter captures listing parameters. Limit <= 0 means unbounded.
type ComplaintFilter struct {
	Statuses      []domain.ComplaintStatus
	Category      *string
	DepartmentID  *int64
	CustomerID    *int64
	Priority      *domain.Priority
	Unprioritised bool
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

// ComplaintPatch lists the fields an update may touch. Nil fields are left unchanged.
type ComplaintPatch struct {
	Category             *string
	Status               *domain.ComplaintStatus
	AssignedDepartmentID *int64
	ForwardedAt          *time.Time
	CompletedAt          *time.Time
	Priority             *domain.Priority
	SLABreached          *bool
	EscalatedAt          *time.Time
	FeedbackProvided     *bool
}

// Empty reports whether the patch changes nothing.
func (p ComplaintPatch) Empty() bool {
	return p == ComplaintPatch{}
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	Update(ctx context.Context, id, expectedVersion int64, patch ComplaintPatch) (*domain.Complaint, error)
	Delete(ctx context.Context, id int64) error
	CountByDepartment(ctx context.Context, departmentID int64) (int, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, complaint_text, category, created_at, status, assigned_department_id,
               forwarded_at, completed_at, priority, sla_breached, escalated_at, customer_id,
               feedback_provided, version, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (complaint_text, category, created_at, status, customer_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, version, updated_at`
	if complaint.Status == "" {
		complaint.Status = domain.ComplaintStatusPending
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now()
	}
	err := r.pool.QueryRow(ctx, query,
		complaint.Text,
		complaint.Category,
		complaint.CreatedAt,
		complaint.Status,
		complaint.CustomerID,
	).Scan(&complaint.ID, &complaint.Version, &complaint.UpdatedAt)
	return mapPgError(err)
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("assigned_department_id=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Unprioritised {
		clauses = append(clauses, "priority IS NULL")
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(complaint_text) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC, id DESC`,
		complaintColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) Update(ctx context.Context, id, expectedVersion int64, patch ComplaintPatch) (*domain.Complaint, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.AssignedDepartmentID != nil {
		add("assigned_department_id", *patch.AssignedDepartmentID)
	}
	if patch.ForwardedAt != nil {
		add("forwarded_at", *patch.ForwardedAt)
	}
	if patch.CompletedAt != nil {
		add("completed_at", *patch.CompletedAt)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.SLABreached != nil {
		add("sla_breached", *patch.SLABreached)
	}
	if patch.EscalatedAt != nil {
		add("escalated_at", *patch.EscalatedAt)
	}
	if patch.FeedbackProvided != nil {
		add("feedback_provided", *patch.FeedbackProvided)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id, expectedVersion)
	query := fmt.Sprintf(`
        UPDATE complaints SET %s, version=version+1, updated_at=NOW()
        WHERE id=$%d AND version=$%d
        RETURNING %s`, strings.Join(sets, ", "), len(args)-1, len(args), complaintColumns)

	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return complaint, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapPgError(err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrVersionConflict
}

func (r *complaintRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM complaints WHERE assigned_department_id=$1`, departmentID,
	).Scan(&count)
	return count, err
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.Text,
		&complaint.Category,
		&complaint.CreatedAt,
		&complaint.Status,
		&complaint.AssignedDepartmentID,
		&complaint.ForwardedAt,
		&complaint.CompletedAt,
		&complaint.Priority,
		&complaint.SLABreached,
		&complaint.EscalatedAt,
		&complaint.CustomerID,
		&complaint.FeedbackProvided,
		&complaint.Version,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}
