package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

type departmentRepository struct {
	db *db
}

func (r *departmentRepository) Create(_ context.Context, dept *domain.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.departments {
		if existing.Name == dept.Name {
			return fmt.Errorf("%w: departments_name_key", repository.ErrDuplicate)
		}
	}
	r.db.departmentSeq++
	dept.ID = r.db.departmentSeq
	dept.CreatedAt = r.db.now()
	r.db.departments[dept.ID] = *dept
	return nil
}

func (r *departmentRepository) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	dept, ok := r.db.departments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &dept, nil
}

func (r *departmentRepository) List(_ context.Context) ([]domain.Department, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]domain.Department, 0, len(r.db.departments))
	for _, dept := range r.db.departments {
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *departmentRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.departments[id]; !ok {
		return repository.ErrNotFound
	}
	if r.db.countByDepartment(id) > 0 {
		return fmt.Errorf("%w: complaints_assigned_department_id_fkey", repository.ErrReferenced)
	}
	delete(r.db.departments, id)
	return nil
}
