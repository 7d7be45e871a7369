package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

type caseNoteRepository struct {
	db *db
}

func (r *caseNoteRepository) Create(_ context.Context, note *domain.CaseNote) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.complaints[note.ComplaintID]; !ok {
		return fmt.Errorf("%w: case_notes_complaint_id_fkey", repository.ErrReferenced)
	}
	r.db.noteSeq++
	note.ID = r.db.noteSeq
	note.CreatedAt = r.db.now()
	stored := *note
	stored.AuthorID = cloneInt(note.AuthorID)
	r.db.notes[note.ID] = stored
	return nil
}

func (r *caseNoteRepository) ListByComplaint(_ context.Context, complaintID int64) ([]domain.CaseNote, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var result []domain.CaseNote
	for _, note := range r.db.notes {
		if note.ComplaintID == complaintID {
			out := note
			out.AuthorID = cloneInt(note.AuthorID)
			result = append(result, out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
