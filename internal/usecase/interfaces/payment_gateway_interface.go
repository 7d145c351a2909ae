package interfaces

import (
	"context"

	"order_ledger/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IPaymentGateway is the contract every payment processor adapter fulfils.
//
// Adapters never persist anything. They return a response or a
// *entities.GatewayError and the caller records the outcome in the order ledger.
type IPaymentGateway interface {
	Descriptor() entities.GatewayDescriptor
	AcceptedCards() []entities.PayCard
	Charge(ctx context.Context, order entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error)
	Capture(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error)
	Refund(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error)
	Void(ctx context.Context, txnID string) (entities.GatewayResponse, error)
	SupportsRefund() bool
	RequiresSecureTransport() bool
}
