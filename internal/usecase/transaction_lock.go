package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order_ledger/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultLockTimeout = 10 * time.Second

// withTransactionLock runs fn while holding the lock for txnID. The lock is
// released on every return path, including panics in fn.
func withTransactionLock(ctx context.Context, locks interfaces.ILockManager, txnID string, timeout time.Duration, logger *zap.Logger, fn func(ctx context.Context) error) error {
	if locks == nil {
		return fmt.Errorf("%w: no lock manager configured", ErrLockTimeout)
	}
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}

	h, err := locks.Acquire(ctx, txnID, timeout)
	if err != nil {
		logger.Warn("transaction lock failed", zap.String("txnid", txnID), zap.Error(err))
		if errors.Is(err, ErrLockTimeout) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrLockTimeout, err)
	}
	defer func() {
		// release even when the request context is already cancelled
		if rerr := h.Release(context.WithoutCancel(ctx)); rerr != nil {
			logger.Error("transaction lock release failed", zap.String("txnid", txnID), zap.Error(rerr))
		}
	}()

	return fn(ctx)
}
