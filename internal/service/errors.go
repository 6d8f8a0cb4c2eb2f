package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInvalid    = errors.New("invalid")
	ErrAlertFetch = errors.New("alert feed fetch failed")
)

// CommentTooLongError reports a submission over the configured length limit.
// It matches ErrInvalid so handlers can map it to a 400 without a separate
// branch, while still carrying the limit for the response body.
type CommentTooLongError struct {
	Limit int
}

func (e *CommentTooLongError) Error() string {
	return fmt.Sprintf("comment exceeds %d characters", e.Limit)
}

func (e *CommentTooLongError) Is(target error) bool {
	return target == ErrInvalid
}
