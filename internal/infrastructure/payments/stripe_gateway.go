package payments

import (
	"context"
	"errors"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

const stripeModule = "stripe"

var ErrMissingStripeKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway charges through PaymentIntents. Auths use manual capture; sales
// capture automatically. The payment method id comes from the checkout data key
// "stripe_payment_method".
type StripeGateway struct {
	intents   paymentintent.Client
	refunds   refund.Client
	currency  string
	precision int32
	logger    *zap.Logger
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey, currency string, precision int, logger *zap.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, ErrMissingStripeKey
	}
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	backend := stripe.GetBackend(stripe.APIBackend)
	return &StripeGateway{
		intents:   paymentintent.Client{B: backend, Key: secretKey},
		refunds:   refund.Client{B: backend, Key: secretKey},
		currency:  strings.ToLower(currency),
		precision: int32(precision),
		logger:    logger.Named("payment.stripe"),
	}, nil
}

func (g *StripeGateway) Descriptor() entities.GatewayDescriptor {
	return entities.GatewayDescriptor{
		Module:  stripeModule,
		Name:    "Stripe",
		Cards:   []string{"visa", "mc", "amex", "disc", "jcb", "dc"},
		Refunds: true,
		Secure:  true,
		Labels:  []string{"Credit Card"},
	}
}

func (g *StripeGateway) AcceptedCards() []entities.PayCard {
	return g.Descriptor().AcceptedPayCards()
}

func (g *StripeGateway) SupportsRefund() bool { return true }

func (g *StripeGateway) RequiresSecureTransport() bool { return true }

func (g *StripeGateway) Charge(ctx context.Context, order entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error) {
	captureMethod := stripe.PaymentIntentCaptureMethodManual
	if order.Capture {
		captureMethod = stripe.PaymentIntentCaptureMethodAutomatic
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(g.minorUnits(amount)),
		Currency:      stripe.String(g.currency),
		CaptureMethod: stripe.String(string(captureMethod)),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String(order.Data["stripe_payment_method"]),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Description: stripe.String("Order " + order.SessionID),
	}
	if order.Customer.Email != "" {
		params.ReceiptEmail = stripe.String(order.Customer.Email)
	}
	params.AddMetadata("session_id", order.SessionID)
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return entities.GatewayResponse{}, classifyStripeError(err)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture, stripe.PaymentIntentStatusProcessing:
	default:
		return entities.GatewayResponse{}, &entities.GatewayError{
			Gateway: stripeModule, Kind: entities.GatewayErrorHTTPStatus, StatusCode: 402,
			Code: string(pi.Status), Message: "the payment could not be completed",
		}
	}
	g.logger.Info("payment intent created", zap.String("txnid", pi.ID), zap.String("status", string(pi.Status)))

	resp := entities.GatewayResponse{
		TxnID:    pi.ID,
		Amount:   g.fromMinor(pi.Amount),
		Captured: pi.Status == stripe.PaymentIntentStatusSucceeded,
		PayType:  order.Billing.CardType,
		PayID:    entities.TruncatePAN(order.Billing.Card),
		Raw:      map[string]any{"status": string(pi.Status)},
	}
	if pi.PaymentMethod != nil && pi.PaymentMethod.Card != nil {
		resp.PayType = string(pi.PaymentMethod.Card.Brand)
		resp.PayID = pi.PaymentMethod.Card.Last4
	}
	return resp, nil
}

func (g *StripeGateway) Capture(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	params := &stripe.PaymentIntentCaptureParams{AmountToCapture: stripe.Int64(g.minorUnits(amount))}
	params.Context = ctx
	pi, err := g.intents.Capture(txnID, params)
	if err != nil {
		return entities.GatewayResponse{}, classifyStripeError(err)
	}
	return entities.GatewayResponse{
		TxnID:    pi.ID,
		Amount:   g.fromMinor(pi.AmountReceived),
		Captured: true,
		Raw:      map[string]any{"status": string(pi.Status)},
	}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(txnID),
		Amount:        stripe.Int64(g.minorUnits(amount)),
	}
	params.Context = ctx
	r, err := g.refunds.New(params)
	if err != nil {
		return entities.GatewayResponse{}, classifyStripeError(err)
	}
	return entities.GatewayResponse{
		TxnID:  r.ID,
		Amount: g.fromMinor(r.Amount),
		Raw:    map[string]any{"status": string(r.Status)},
	}, nil
}

func (g *StripeGateway) Void(ctx context.Context, txnID string) (entities.GatewayResponse, error) {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	pi, err := g.intents.Cancel(txnID, params)
	if err != nil {
		return entities.GatewayResponse{}, classifyStripeError(err)
	}
	return entities.GatewayResponse{TxnID: pi.ID, Raw: map[string]any{"status": string(pi.Status)}}, nil
}

func (g *StripeGateway) minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(g.precision).Round(0).IntPart()
}

func (g *StripeGateway) fromMinor(v int64) decimal.Decimal {
	return decimal.New(v, -g.precision)
}

// classifyStripeError maps stripe errors onto gateway error kinds. Errors
// without an HTTP status never reached Stripe.
func classifyStripeError(err error) error {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return &entities.GatewayError{Gateway: stripeModule, Kind: entities.GatewayErrorCommunication, Message: "Stripe request failed", Err: err}
	}
	if serr.HTTPStatusCode == 0 {
		return &entities.GatewayError{Gateway: stripeModule, Kind: entities.GatewayErrorCommunication, Message: serr.Msg, Err: err}
	}
	code := string(serr.Code)
	if code == "" {
		code = string(serr.Type)
	}
	return &entities.GatewayError{
		Gateway:    stripeModule,
		Kind:       entities.GatewayErrorHTTPStatus,
		StatusCode: serr.HTTPStatusCode,
		Code:       code,
		Message:    serr.Msg,
		Err:        err,
	}
}
