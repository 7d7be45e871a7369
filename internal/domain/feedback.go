package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is customer input on a completed complaint.
type Feedback struct {
	ID          int64
	ComplaintID int64
	Rating      int
	Comments    string
	CreatedAt   time.Time
}
