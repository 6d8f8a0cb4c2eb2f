package model

import "time"

// ServiceAlert is a transit agency service alert ingested from the
// configured alert feed. Hash dedups alerts across refreshes.
type ServiceAlert struct {
	ID          int64
	Hash        string
	Title       string
	Summary     string
	URL         *string
	PublishedAt *time.Time
	CreatedAt   time.Time
}
