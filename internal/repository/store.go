package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store groups every repository the services depend on.
type Store struct {
	Complaints  ComplaintRepository
	Departments DepartmentRepository
	Feedback    FeedbackRepository
	Notes       CaseNoteRepository
	Users       UserRepository
}

// NewPostgresStore wires the pgx implementations around one pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Complaints:  NewComplaintRepository(pool),
		Departments: NewDepartmentRepository(pool),
		Feedback:    NewFeedbackRepository(pool),
		Notes:       NewCaseNoteRepository(pool),
		Users:       NewUserRepository(pool),
	}
}
