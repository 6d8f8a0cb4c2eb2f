package translate_test

import (
	"context"
	"testing"

	"citypulse/backend/internal/translate"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	rl := translate.NewRateLimiter(5)
	require.Equal(t, 5, rl.GetLimit())

	// Test update
	rl.SetLimit(20)
	require.Equal(t, 20, rl.GetLimit())

	// Test default on invalid
	rl.SetLimit(0)
	require.Equal(t, translate.DefaultRateLimit, rl.GetLimit())

	// Test wait (basic)
	err := rl.Wait(context.Background())
	require.NoError(t, err)
}

func TestNewRateLimiter_InvalidLimit(t *testing.T) {
	rl := translate.NewRateLimiter(0)
	require.Equal(t, translate.DefaultRateLimit, rl.GetLimit())
}
