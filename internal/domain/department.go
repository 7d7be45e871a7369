package domain

import "time"

// Department is a forwarding target for complaints.
type Department struct {
	ID          int64
	Name        string
	Email       string
	Description string
	CreatedAt   time.Time
}
