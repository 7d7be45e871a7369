// Package memory keeps every repository in process memory. It backs the
// service when no Postgres DSN is configured and doubles as the test store.
package memory

import (
	"sync"
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

type db struct {
	mu sync.RWMutex

	complaints  map[int64]domain.Complaint
	departments map[int64]domain.Department
	feedback    map[int64]domain.Feedback
	notes       map[int64]domain.CaseNote
	users       map[int64]domain.User

	complaintSeq  int64
	departmentSeq int64
	feedbackSeq   int64
	noteSeq       int64
	userSeq       int64

	now func() time.Time
}

// NewStore returns a repository.Store whose repositories share one dataset.
func NewStore() repository.Store {
	d := &db{
		complaints:  map[int64]domain.Complaint{},
		departments: map[int64]domain.Department{},
		feedback:    map[int64]domain.Feedback{},
		notes:       map[int64]domain.CaseNote{},
		users:       map[int64]domain.User{},
		now:         time.Now,
	}
	return repository.Store{
		Complaints:  &complaintRepository{db: d},
		Departments: &departmentRepository{db: d},
		Feedback:    &feedbackRepository{db: d},
		Notes:       &caseNoteRepository{db: d},
		Users:       &userRepository{db: d},
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneComplaint(c domain.Complaint) domain.Complaint {
	out := c
	out.AssignedDepartmentID = cloneInt(c.AssignedDepartmentID)
	out.CustomerID = cloneInt(c.CustomerID)
	out.ForwardedAt = cloneTime(c.ForwardedAt)
	out.CompletedAt = cloneTime(c.CompletedAt)
	out.EscalatedAt = cloneTime(c.EscalatedAt)
	if c.Priority != nil {
		p := *c.Priority
		out.Priority = &p
	}
	return out
}
