package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// IOrderEventObserver reacts to an event after the ledger stored it.
type IOrderEventObserver interface {
	Name() string
	Observe(ctx context.Context, e entities.OrderEvent) error
}
