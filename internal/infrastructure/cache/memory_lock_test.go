package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	l := NewMemoryLocker(time.Minute)
	l.clock = func() time.Time { return now }

	ok, err := l.TryLock(ctx, "sweep")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.TryLock(ctx, "sweep")
	assert.False(t, ok, "held")
	ok, _ = l.TryLock(ctx, "delivery:2026-03-12")
	assert.True(t, ok, "keys are independent")

	require.NoError(t, l.Unlock(ctx, "sweep"))
	ok, _ = l.TryLock(ctx, "sweep")
	assert.True(t, ok, "released")

	now = now.Add(2 * time.Minute)
	ok, _ = l.TryLock(ctx, "sweep")
	assert.True(t, ok, "expired holders lose the lock")
}
