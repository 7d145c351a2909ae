package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps leases in process. It only serializes goroutines of a
// single instance.
type MemoryBackend struct {
	mu     sync.Mutex
	leases map[string]memoryLease
	now    func() time.Time
}

type memoryLease struct {
	owner   string
	expires time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{leases: map[string]memoryLease{}, now: time.Now}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) TryAcquire(_ context.Context, key, owner string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if l, ok := b.leases[key]; ok && l.owner != owner && now.Before(l.expires) {
		return false, nil
	}
	b.leases[key] = memoryLease{owner: owner, expires: now.Add(ttl)}
	return true, nil
}

func (b *MemoryBackend) Release(_ context.Context, key, owner string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l, ok := b.leases[key]; ok && l.owner == owner {
		delete(b.leases, key)
	}
	return nil
}
