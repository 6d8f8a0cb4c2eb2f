package service_test

import (
	"errors"
	"fmt"
	"testing"

	"citypulse/backend/internal/service"

	"github.com/stretchr/testify/require"
)

func TestCommentTooLongError_Error(t *testing.T) {
	err := &service.CommentTooLongError{Limit: 1000}

	require.Equal(t, "comment exceeds 1000 characters", err.Error())
}

func TestCommentTooLongError_Is(t *testing.T) {
	err := &service.CommentTooLongError{Limit: 500}

	// Should match ErrInvalid
	require.True(t, errors.Is(err, service.ErrInvalid))

	// Should not match other errors
	require.False(t, errors.Is(err, service.ErrNotFound))
	require.False(t, errors.Is(err, service.ErrConflict))
	require.False(t, errors.Is(err, service.ErrAlertFetch))
}

func TestCommentTooLongError_As(t *testing.T) {
	var err error = fmt.Errorf("submit: %w", &service.CommentTooLongError{Limit: 1000})

	var tooLong *service.CommentTooLongError
	require.True(t, errors.As(err, &tooLong))
	require.Equal(t, 1000, tooLong.Limit)
}
