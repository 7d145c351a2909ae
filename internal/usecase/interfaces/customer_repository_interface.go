package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"
)

// ICustomerRepository stores customers and their addresses.
//
// GetByEmail returns a zero Customer when the email is unknown. SaveAddress
// must never store a CVV and expects the card number already truncated.
type ICustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (entities.Customer, error)
	Save(ctx context.Context, c entities.Customer) (entities.Customer, error)
	SaveAddress(ctx context.Context, kind string, a entities.BillingAddress) (entities.BillingAddress, error)
}
