package lock

import (
	"context"
	"fmt"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/infrastructure/metrics"
	"order_ledger/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAttempts = 3
	defaultLease    = 30 * time.Second
	minPoll         = 20 * time.Millisecond
	maxPoll         = 250 * time.Millisecond
)

// Backend takes or drops a single lease without waiting. A lease left behind
// by a crashed owner expires after ttl.
type Backend interface {
	Name() string
	TryAcquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}

// Manager turns a Backend into an ILockManager. The timeout is split across
// three attempts; each attempt polls until its share runs out or the backend
// fails.
type Manager struct {
	backend  Backend
	logger   *zap.Logger
	metrics  *metrics.Metrics
	attempts int
	lease    time.Duration
}

var _ interfaces.ILockManager = (*Manager)(nil)

func NewManager(backend Backend, logger *zap.Logger, m *metrics.Metrics) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		backend:  backend,
		logger:   logger.Named("txn.lock"),
		metrics:  m,
		attempts: defaultAttempts,
		lease:    defaultLease,
	}
}

func (m *Manager) Acquire(ctx context.Context, key string, timeout time.Duration) (interfaces.ILockHandle, error) {
	start := time.Now()
	owner := uuid.NewString()
	lease := m.lease
	if timeout > lease {
		lease = 2 * timeout
	}
	window := timeout / time.Duration(m.attempts)

	for attempt := 1; attempt <= m.attempts; attempt++ {
		ok, err := m.attempt(ctx, key, owner, lease, window)
		if ok {
			m.metrics.ObserveLock(m.backend.Name(), true, time.Since(start))
			return &handle{backend: m.backend, key: key, owner: owner, logger: m.logger}, nil
		}
		if ctx.Err() != nil {
			break
		}
		if err != nil {
			m.logger.Warn("lock attempt failed", zap.String("key", key), zap.Int("attempt", attempt), zap.Error(err))
		}
	}

	m.metrics.ObserveLock(m.backend.Name(), false, time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrLockTimeout, key, err)
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", entities.ErrLockTimeout, key, m.attempts)
}

func (m *Manager) attempt(ctx context.Context, key, owner string, lease, window time.Duration) (bool, error) {
	deadline := time.Now().Add(window)
	poll := minPoll
	for {
		ok, err := m.backend.TryAcquire(ctx, key, owner, lease)
		if ok || err != nil {
			return ok, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		if poll > remaining {
			poll = remaining
		}
		t := time.NewTimer(poll)
		select {
		case <-ctx.Done():
			t.Stop()
			return false, ctx.Err()
		case <-t.C:
		}
		if poll *= 2; poll > maxPoll {
			poll = maxPoll
		}
	}
}

type handle struct {
	backend Backend
	key     string
	owner   string
	logger  *zap.Logger
}

func (h *handle) Key() string { return h.key }

func (h *handle) Release(ctx context.Context) error {
	if err := h.backend.Release(ctx, h.key, h.owner); err != nil {
		h.logger.Warn("lock release failed", zap.String("key", h.key), zap.Error(err))
		return err
	}
	return nil
}
