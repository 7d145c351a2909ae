package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// IPurchaseRepository persists purchases with a unique transaction id.
//
// Create returns entities.ErrDuplicateTransaction when the txnid is taken.
// GetByID and GetByTxnID return a zero Purchase when nothing matches.
// UpdateStatus only writes when the stored status equals from.
type IPurchaseRepository interface {
	Create(ctx context.Context, p entities.Purchase) (entities.Purchase, error)
	GetByID(ctx context.Context, id string) (entities.Purchase, error)
	GetByTxnID(ctx context.Context, txnID string) (entities.Purchase, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.TxnStatus) (bool, error)
}
