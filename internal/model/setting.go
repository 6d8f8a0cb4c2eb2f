package model

import "time"

// Setting is a key-value configuration row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
