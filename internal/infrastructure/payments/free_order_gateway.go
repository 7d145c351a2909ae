package payments

import (
	"context"
	"fmt"
	"hash/crc32"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const FreeOrderModule = "free-order"

// FreeOrderGateway settles zero-total orders without a remote processor.
type FreeOrderGateway struct {
	now func() time.Time
}

var _ interfaces.IPaymentGateway = (*FreeOrderGateway)(nil)

func NewFreeOrderGateway() *FreeOrderGateway {
	return &FreeOrderGateway{now: time.Now}
}

func (g *FreeOrderGateway) Descriptor() entities.GatewayDescriptor {
	return entities.GatewayDescriptor{Module: FreeOrderModule, Name: "Free Order"}
}

func (g *FreeOrderGateway) AcceptedCards() []entities.PayCard { return nil }

func (g *FreeOrderGateway) SupportsRefund() bool { return false }

func (g *FreeOrderGateway) RequiresSecureTransport() bool { return false }

// Charge accepts only zero amounts. The txnid is the crc32 of the customer
// email joined with the current unix time.
func (g *FreeOrderGateway) Charge(_ context.Context, order entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error) {
	if !amount.IsZero() {
		return entities.GatewayResponse{}, &entities.GatewayError{
			Gateway: FreeOrderModule, Kind: entities.GatewayErrorHTTPStatus, StatusCode: 402,
			Code: "not-free", Message: "the order is not free",
		}
	}
	seed := strings.ToLower(strings.TrimSpace(order.Customer.Email)) + fmt.Sprint(g.now().Unix())
	txnID := fmt.Sprintf("%d", crc32.ChecksumIEEE([]byte(seed)))
	return entities.GatewayResponse{TxnID: txnID, Amount: decimal.Zero, Captured: true, PayType: "Free"}, nil
}

func (g *FreeOrderGateway) Capture(_ context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	return entities.GatewayResponse{TxnID: txnID, Amount: amount, Captured: true}, nil
}

func (g *FreeOrderGateway) Refund(context.Context, string, decimal.Decimal) (entities.GatewayResponse, error) {
	return entities.GatewayResponse{}, &entities.GatewayError{Gateway: FreeOrderModule, Kind: entities.GatewayErrorHTTPStatus, StatusCode: 400, Code: "unsupported", Message: "free orders cannot be refunded"}
}

func (g *FreeOrderGateway) Void(_ context.Context, txnID string) (entities.GatewayResponse, error) {
	return entities.GatewayResponse{TxnID: txnID}, nil
}
