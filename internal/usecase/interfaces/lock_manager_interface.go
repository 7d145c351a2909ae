package interfaces

import (
	"context"
	"time"
)

// ILockManager hands out cross-process locks keyed by transaction id.
//
// Acquire blocks up to timeout and returns entities.ErrLockTimeout when the
// lock could not be taken.
type ILockManager interface {
	Acquire(ctx context.Context, key string, timeout time.Duration) (ILockHandle, error)
}

type ILockHandle interface {
	Key() string
	Release(ctx context.Context) error
}
