package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

type complaintRepository struct {
	db *db
}

func (r *complaintRepository) Create(_ context.Context, complaint *domain.Complaint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if complaint.CustomerID != nil {
		if _, ok := r.db.users[*complaint.CustomerID]; !ok {
			return fmt.Errorf("%w: complaints_customer_id_fkey", repository.ErrReferenced)
		}
	}
	if complaint.Status == "" {
		complaint.Status = domain.ComplaintStatusPending
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = r.db.now()
	}
	r.db.complaintSeq++
	complaint.ID = r.db.complaintSeq
	complaint.Version = 1
	complaint.UpdatedAt = r.db.now()
	r.db.complaints[complaint.ID] = cloneComplaint(*complaint)
	return nil
}

func (r *complaintRepository) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stored, ok := r.db.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	complaint := cloneComplaint(stored)
	return &complaint, nil
}

func (r *complaintRepository) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var result []domain.Complaint
	for _, complaint := range r.db.complaints {
		if matches(complaint, filter) {
			result = append(result, cloneComplaint(complaint))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return nil, nil
		}
		end := offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func matches(c domain.Complaint, f repository.ComplaintFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if c.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Category != nil && c.Category != *f.Category {
		return false
	}
	if f.DepartmentID != nil && (c.AssignedDepartmentID == nil || *c.AssignedDepartmentID != *f.DepartmentID) {
		return false
	}
	if f.CustomerID != nil && (c.CustomerID == nil || *c.CustomerID != *f.CustomerID) {
		return false
	}
	if f.Priority != nil && (c.Priority == nil || *c.Priority != *f.Priority) {
		return false
	}
	if f.Unprioritised && c.Priority != nil {
		return false
	}
	if f.CreatedFrom != nil && c.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !c.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	if f.SearchTerm != nil {
		term := strings.ToLower(strings.TrimSpace(*f.SearchTerm))
		if term != "" && !strings.Contains(strings.ToLower(c.Text), term) {
			return false
		}
	}
	return true
}

func (r *complaintRepository) Update(_ context.Context, id, expectedVersion int64, patch repository.ComplaintPatch) (*domain.Complaint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Empty() {
		complaint := cloneComplaint(stored)
		return &complaint, nil
	}
	if stored.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}
	if patch.AssignedDepartmentID != nil {
		if _, ok := r.db.departments[*patch.AssignedDepartmentID]; !ok {
			return nil, fmt.Errorf("%w: complaints_assigned_department_id_fkey", repository.ErrReferenced)
		}
	}

	next := cloneComplaint(stored)
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.AssignedDepartmentID != nil {
		next.AssignedDepartmentID = cloneInt(patch.AssignedDepartmentID)
	}
	if patch.ForwardedAt != nil {
		next.ForwardedAt = cloneTime(patch.ForwardedAt)
	}
	if patch.CompletedAt != nil {
		next.CompletedAt = cloneTime(patch.CompletedAt)
	}
	if patch.Priority != nil {
		p := *patch.Priority
		next.Priority = &p
	}
	if patch.SLABreached != nil {
		next.SLABreached = *patch.SLABreached
	}
	if patch.EscalatedAt != nil {
		next.EscalatedAt = cloneTime(patch.EscalatedAt)
	}
	if patch.FeedbackProvided != nil {
		next.FeedbackProvided = *patch.FeedbackProvided
	}
	next.Version++
	next.UpdatedAt = r.db.now()
	r.db.complaints[id] = next

	out := cloneComplaint(next)
	return &out, nil
}

// Delete removes the complaint together with its feedback and notes.
func (r *complaintRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.complaints[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.complaints, id)
	for fid, fb := range r.db.feedback {
		if fb.ComplaintID == id {
			delete(r.db.feedback, fid)
		}
	}
	for nid, note := range r.db.notes {
		if note.ComplaintID == id {
			delete(r.db.notes, nid)
		}
	}
	return nil
}

func (r *complaintRepository) CountByDepartment(_ context.Context, departmentID int64) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.countByDepartment(departmentID), nil
}

func (d *db) countByDepartment(departmentID int64) int {
	count := 0
	for _, complaint := range d.complaints {
		if complaint.AssignedDepartmentID != nil && *complaint.AssignedDepartmentID == departmentID {
			count++
		}
	}
	return count
}
