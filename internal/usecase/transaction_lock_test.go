package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_interfaces "order_ledger/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestWithTransactionLock(t *testing.T) {
	ctx := context.Background()

	t.Run("releases after error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		locks := mock_interfaces.NewMockILockManager(ctrl)
		handle := mock_interfaces.NewMockILockHandle(ctrl)

		locks.EXPECT().Acquire(gomock.Any(), "txn-1", time.Second).Return(handle, nil)
		handle.EXPECT().Release(gomock.Any()).Return(nil)

		want := errors.New("materialize failed")
		err := withTransactionLock(ctx, locks, "txn-1", time.Second, zap.NewNop(), func(context.Context) error { return want })
		if !errors.Is(err, want) {
			t.Fatalf("expected fn error, got %v", err)
		}
	})

	t.Run("releases after panic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		locks := mock_interfaces.NewMockILockManager(ctrl)
		handle := mock_interfaces.NewMockILockHandle(ctrl)

		locks.EXPECT().Acquire(gomock.Any(), "txn-1", defaultLockTimeout).Return(handle, nil)
		handle.EXPECT().Release(gomock.Any()).Return(nil)

		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = withTransactionLock(ctx, locks, "txn-1", 0, zap.NewNop(), func(context.Context) error { panic("boom") })
	})

	t.Run("release error is not returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		locks := mock_interfaces.NewMockILockManager(ctrl)
		handle := mock_interfaces.NewMockILockHandle(ctrl)

		locks.EXPECT().Acquire(gomock.Any(), "txn-1", time.Second).Return(handle, nil)
		handle.EXPECT().Release(gomock.Any()).Return(errors.New("lease gone"))

		if err := withTransactionLock(ctx, locks, "txn-1", time.Second, zap.NewNop(), func(context.Context) error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("acquire failure becomes lock timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		locks := mock_interfaces.NewMockILockManager(ctrl)

		locks.EXPECT().Acquire(gomock.Any(), "txn-1", time.Second).Return(nil, errors.New("connection refused"))

		called := false
		err := withTransactionLock(ctx, locks, "txn-1", time.Second, zap.NewNop(), func(context.Context) error {
			called = true
			return nil
		})
		if !errors.Is(err, ErrLockTimeout) {
			t.Fatalf("expected ErrLockTimeout, got %v", err)
		}
		if called {
			t.Fatalf("fn must not run without the lock")
		}
	})

	t.Run("no lock manager", func(t *testing.T) {
		err := withTransactionLock(ctx, nil, "txn-1", time.Second, zap.NewNop(), func(context.Context) error { return nil })
		if !errors.Is(err, ErrLockTimeout) {
			t.Fatalf("expected ErrLockTimeout, got %v", err)
		}
	})
}
