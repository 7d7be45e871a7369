package domain

import "time"

// CaseNote is an append-only log entry attached to a complaint.
// System entries carry no author.
type CaseNote struct {
	ID          int64
	ComplaintID int64
	AuthorID    *int64
	Text        string
	IsInternal  bool
	CreatedAt   time.Time
}
