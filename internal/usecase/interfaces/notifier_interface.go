package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// INotifier delivers order notifications. Delivery itself is out of process.
type INotifier interface {
	OrderReceipt(ctx context.Context, p entities.Purchase, to string) error
	AccountCreated(ctx context.Context, c entities.Customer, password string) error
}
