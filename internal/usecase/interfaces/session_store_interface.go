package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// ISessionStore keeps the session-scoped order between requests.
// Load returns a fresh order for unknown sessions.
type ISessionStore interface {
	Load(ctx context.Context, sessionID string) (*entities.OrderContext, error)
	Save(ctx context.Context, order *entities.OrderContext) error
}
