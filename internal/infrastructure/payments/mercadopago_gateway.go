package payments

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const mercadoPagoModule = "mercadopago"

// MercadoPagoGateway charges tokenized cards through the Mercado Pago payments API.
// The card token comes from the checkout data key "mp_token".
type MercadoPagoGateway struct {
	client   payment.Client
	refunds  refund.Client
	mockMode bool
	logger   *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, logger *zap.Logger) (*MercadoPagoGateway, error) {
	logger = logger.Named("payment.mercadopago")
	if isPaymentGatewayMockEnabled() {
		logger.Info("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, logger: logger}, nil
	}

	if accessToken == "" {
		logger.Error("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.Error("failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), refunds: refund.NewClient(cfg), logger: logger}, nil
}

func (g *MercadoPagoGateway) Descriptor() entities.GatewayDescriptor {
	return entities.GatewayDescriptor{
		Module:  mercadoPagoModule,
		Name:    "Mercado Pago",
		Cards:   []string{"visa", "mc", "amex", "elo", "hipercard"},
		Refunds: true,
		Secure:  true,
		Labels:  []string{"Mercado Pago"},
	}
}

func (g *MercadoPagoGateway) AcceptedCards() []entities.PayCard {
	return g.Descriptor().AcceptedPayCards()
}

func (g *MercadoPagoGateway) SupportsRefund() bool { return true }

func (g *MercadoPagoGateway) RequiresSecureTransport() bool { return true }

func (g *MercadoPagoGateway) Charge(ctx context.Context, order entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error) {
	if g != nil && g.mockMode {
		id, _ := gonanoid.Generate("0123456789", 12)
		g.logger.Info("mock charge", zap.String("txnid", id), zap.Bool("capture", order.Capture))
		return entities.GatewayResponse{
			TxnID:    id,
			Amount:   amount,
			Captured: order.Capture,
			PayType:  order.Billing.CardType,
			PayID:    entities.TruncatePAN(order.Billing.Card),
			Raw:      map[string]any{"status": "approved", "status_detail": "accredited"},
		}, nil
	}
	if g == nil || g.client == nil {
		return entities.GatewayResponse{}, ErrMercadoPagoGatewayNotConfigured
	}

	value, _ := amount.Float64()
	req := payment.Request{
		TransactionAmount: value,
		Token:             order.Data["mp_token"],
		PaymentMethodID:   order.Data["mp_payment_method"],
		Installments:      1,
		Capture:           order.Capture,
		ExternalReference: order.SessionID,
		Description:       "Order " + order.SessionID,
		Payer:             &payment.PayerRequest{Email: order.Customer.Email, FirstName: order.Customer.FirstName, LastName: order.Customer.LastName},
	}
	g.logger.Debug("create start", zap.String("session", order.SessionID), zap.Bool("capture", order.Capture))

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.logger.Warn("sdk create failed", zap.Error(err))
		return entities.GatewayResponse{}, g.commError(err)
	}
	if err := g.checkStatus(resp); err != nil {
		return entities.GatewayResponse{}, err
	}
	g.logger.Info("create success", zap.Int("provider_payment_id", resp.ID), zap.String("provider_status", resp.Status))

	out := g.response(resp, amount)
	out.PayID = entities.TruncatePAN(order.Billing.Card)
	if out.PayType == "" {
		out.PayType = order.Billing.CardType
	}
	return out, nil
}

func (g *MercadoPagoGateway) Capture(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	if g.mockMode {
		return entities.GatewayResponse{TxnID: txnID, Amount: amount, Captured: true}, nil
	}
	id, err := g.paymentID(txnID)
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	value, _ := amount.Float64()
	resp, err := g.client.CaptureAmount(ctx, id, value)
	if err != nil {
		return entities.GatewayResponse{}, g.commError(err)
	}
	if err := g.checkStatus(resp); err != nil {
		return entities.GatewayResponse{}, err
	}
	out := g.response(resp, amount)
	out.Captured = true
	return out, nil
}

func (g *MercadoPagoGateway) Refund(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	if g.mockMode {
		id, _ := gonanoid.Generate("0123456789", 12)
		return entities.GatewayResponse{TxnID: id, Amount: amount}, nil
	}
	id, err := g.paymentID(txnID)
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	value, _ := amount.Float64()
	resp, err := g.refunds.CreatePartialRefund(ctx, id, value)
	if err != nil {
		return entities.GatewayResponse{}, g.commError(err)
	}
	return entities.GatewayResponse{
		TxnID:  strconv.Itoa(resp.ID),
		Amount: decimal.NewFromFloat(resp.Amount),
		Raw:    map[string]any{"status": resp.Status, "payment_id": resp.PaymentID},
	}, nil
}

func (g *MercadoPagoGateway) Void(ctx context.Context, txnID string) (entities.GatewayResponse, error) {
	if g.mockMode {
		return entities.GatewayResponse{TxnID: txnID}, nil
	}
	id, err := g.paymentID(txnID)
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	resp, err := g.client.Cancel(ctx, id)
	if err != nil {
		return entities.GatewayResponse{}, g.commError(err)
	}
	if resp.Status != "cancelled" {
		return entities.GatewayResponse{}, &entities.GatewayError{Gateway: mercadoPagoModule, Kind: entities.GatewayErrorHTTPStatus, Code: resp.Status, Message: "the authorization could not be cancelled"}
	}
	return entities.GatewayResponse{TxnID: strconv.Itoa(resp.ID), Raw: map[string]any{"status": resp.Status}}, nil
}

func (g *MercadoPagoGateway) paymentID(txnID string) (int, error) {
	if g == nil || g.client == nil {
		return 0, ErrMercadoPagoGatewayNotConfigured
	}
	id, err := strconv.Atoi(strings.TrimSpace(txnID))
	if err != nil {
		return 0, &entities.GatewayError{Gateway: mercadoPagoModule, Kind: entities.GatewayErrorMalformedResponse, Message: "invalid payment id " + txnID, Err: err}
	}
	return id, nil
}

// checkStatus turns rejected payments into declines. Approved, authorized and
// in-process payments are accepted.
func (g *MercadoPagoGateway) checkStatus(resp *payment.Response) error {
	if resp == nil || resp.ID == 0 {
		return &entities.GatewayError{Gateway: mercadoPagoModule, Kind: entities.GatewayErrorMalformedResponse, Message: "the payment processor did not return a payment id"}
	}
	switch resp.Status {
	case "approved", "authorized", "in_process", "pending":
		return nil
	}
	return &entities.GatewayError{
		Gateway:    mercadoPagoModule,
		Kind:       entities.GatewayErrorHTTPStatus,
		StatusCode: 402,
		Code:       resp.StatusDetail,
		Message:    "the payment was " + resp.Status,
	}
}

func (g *MercadoPagoGateway) response(resp *payment.Response, requested decimal.Decimal) entities.GatewayResponse {
	fees := decimal.Zero
	for _, f := range resp.FeeDetails {
		fees = fees.Add(decimal.NewFromFloat(f.Amount))
	}
	amount := decimal.NewFromFloat(resp.TransactionAmount)
	if amount.IsZero() {
		amount = requested
	}
	return entities.GatewayResponse{
		TxnID:    strconv.Itoa(resp.ID),
		Amount:   amount,
		Fees:     fees,
		Captured: resp.Captured,
		PayType:  resp.PaymentMethodID,
		Raw:      map[string]any{"status": resp.Status, "status_detail": resp.StatusDetail, "payment_type": resp.PaymentTypeID},
	}
}

func (g *MercadoPagoGateway) commError(err error) error {
	return &entities.GatewayError{Gateway: mercadoPagoModule, Kind: entities.GatewayErrorCommunication, Message: "Mercado Pago request failed", Err: err}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
