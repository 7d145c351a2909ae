package interfaces

import (
	"context"
)

// IProductStatsRepository keeps aggregate sales counters.
//
// ApplySold adds delta*quantity to each product once per key; a repeated key
// is ignored and reported with applied=false.
type IProductStatsRepository interface {
	ApplySold(ctx context.Context, key string, quantities map[string]int, delta int) (applied bool, err error)
}

type IInventoryRepository interface {
	Decrement(ctx context.Context, priceID string, quantity int) error
}

type IPromotionRepository interface {
	MarkUsed(ctx context.Context, ids []string) error
}
