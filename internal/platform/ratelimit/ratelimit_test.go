package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiterMemory(t *testing.T) {
	l, err := NewLimiter("2-M", nil, "test")
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		lctx, err := l.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, lctx.Reached)
	}
	lctx, err := l.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, lctx.Reached)

	other, err := l.Peek(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(2), other.Remaining)
}

func TestNewLimiterInvalidRate(t *testing.T) {
	_, err := NewLimiter("five per minute", nil, "test")
	assert.Error(t, err)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
