package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// IOrderEventRepository is the append-only store behind the order ledger.
//
// Create rejects a second debit or credit event with the same purchase, type
// and txnid with entities.ErrDuplicateTransaction.
type IOrderEventRepository interface {
	Create(ctx context.Context, e entities.OrderEvent) (entities.OrderEvent, error)
	// ListByPurchase returns every event of a purchase, oldest first.
	ListByPurchase(ctx context.Context, purchaseID string) ([]entities.OrderEvent, error)
	// FindByTxn returns the stored event of the given type and txnid, or a zero event.
	FindByTxn(ctx context.Context, purchaseID string, eventType entities.EventType, txnID string) (entities.OrderEvent, error)
}
