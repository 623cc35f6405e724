package cache

import (
	"context"
	"sync"
	"time"

	"cremacao_pet/internal/usecase/interfaces"
)

// MemoryLocker is the single-instance ILocker used when Redis is not configured.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	ttl   time.Duration
	clock func() time.Time
}

var _ interfaces.ILocker = (*MemoryLocker)(nil)

func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &MemoryLocker{held: map[string]time.Time{}, ttl: ttl, clock: time.Now}
}

func (l *MemoryLocker) TryLock(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return false, nil
	}
	l.held[key] = now.Add(l.ttl)
	return true, nil
}

func (l *MemoryLocker) Unlock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
