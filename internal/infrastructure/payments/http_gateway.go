package payments

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HTTPGateway talks to a processor exposing a plain JSON charge API:
//
//	POST {base}/charges
//	POST {base}/charges/{id}/capture
//	POST {base}/charges/{id}/refunds
//	POST {base}/charges/{id}/void
type HTTPGateway struct {
	desc      entities.GatewayDescriptor
	baseURL   string
	apiKey    string
	precision int32
	transport *Transport
	logger    *zap.Logger
}

var _ interfaces.IPaymentGateway = (*HTTPGateway)(nil)

type HTTPGatewayConfig struct {
	BaseURL   string
	APIKey    string
	Cards     []string
	Labels    []string
	Precision int
}

func NewHTTPGateway(cfg HTTPGatewayConfig, transport *Transport, logger *zap.Logger) *HTTPGateway {
	cards := cfg.Cards
	if len(cards) == 0 {
		cards = []string{"visa", "mc", "amex", "disc"}
	}
	precision := int32(cfg.Precision)
	if precision <= 0 {
		precision = 2
	}
	return &HTTPGateway{
		desc: entities.GatewayDescriptor{
			Module:  "http",
			Name:    "Card Processor",
			Cards:   cards,
			Refunds: true,
			Secure:  true,
			Labels:  cfg.Labels,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		precision: precision,
		transport: transport,
		logger:    logger.Named("payment.http"),
	}
}

type httpCharge struct {
	Amount  string    `json:"amount"`
	Capture bool      `json:"capture"`
	Card    httpCard  `json:"card"`
	Order   httpOrder `json:"order"`
}

type httpCard struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month,omitempty"`
	ExpYear  int    `json:"exp_year,omitempty"`
	CVC      string `json:"cvc,omitempty"`
	Holder   string `json:"holder,omitempty"`
}

type httpOrder struct {
	Session string `json:"session"`
	Email   string `json:"email"`
	IP      string `json:"ip,omitempty"`
}

type httpReply struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Fees     decimal.Decimal `json:"fees"`
	Captured bool            `json:"captured"`
	Status   string          `json:"status"`
	PayType  string          `json:"paytype"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *HTTPGateway) Descriptor() entities.GatewayDescriptor { return g.desc }

func (g *HTTPGateway) AcceptedCards() []entities.PayCard { return g.desc.AcceptedPayCards() }

func (g *HTTPGateway) SupportsRefund() bool { return g.desc.Refunds }

func (g *HTTPGateway) RequiresSecureTransport() bool { return g.desc.Secure }

func (g *HTTPGateway) Charge(ctx context.Context, order entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error) {
	req := httpCharge{
		Amount:  amount.StringFixed(g.precision),
		Capture: order.Capture,
		Card: httpCard{
			Number: order.Billing.Card,
			CVC:    order.Billing.CVV,
			Holder: order.Billing.CardHolder,
		},
		Order: httpOrder{Session: order.SessionID, Email: order.Customer.Email, IP: order.ClientIP},
	}
	if !order.Billing.CardExpires.IsZero() {
		req.Card.ExpMonth = int(order.Billing.CardExpires.Month())
		req.Card.ExpYear = order.Billing.CardExpires.Year()
	}

	var reply httpReply
	if err := g.call(ctx, g.baseURL+"/charges", req, &reply); err != nil {
		return entities.GatewayResponse{}, err
	}
	resp := g.response(reply, amount)
	resp.PayID = entities.TruncatePAN(order.Billing.Card)
	if resp.PayType == "" {
		resp.PayType = order.Billing.CardType
	}
	g.logger.Info("charge accepted", zap.String("txnid", resp.TxnID), zap.Bool("captured", resp.Captured))
	return resp, nil
}

func (g *HTTPGateway) Capture(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	var reply httpReply
	err := g.call(ctx, g.chargeURL(txnID, "capture"), map[string]string{"amount": amount.StringFixed(g.precision)}, &reply)
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	resp := g.response(reply, amount)
	resp.Captured = true
	return resp, nil
}

func (g *HTTPGateway) Refund(ctx context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	var reply httpReply
	err := g.call(ctx, g.chargeURL(txnID, "refunds"), map[string]string{"amount": amount.StringFixed(g.precision)}, &reply)
	if err != nil {
		return entities.GatewayResponse{}, err
	}
	return g.response(reply, amount), nil
}

func (g *HTTPGateway) Void(ctx context.Context, txnID string) (entities.GatewayResponse, error) {
	var reply httpReply
	if err := g.call(ctx, g.chargeURL(txnID, "void"), nil, &reply); err != nil {
		return entities.GatewayResponse{}, err
	}
	return g.response(reply, decimal.Zero), nil
}

func (g *HTTPGateway) chargeURL(txnID, action string) string {
	return g.baseURL + "/charges/" + url.PathEscape(txnID) + "/" + action
}

func (g *HTTPGateway) call(ctx context.Context, endpoint string, in any, reply *httpReply) error {
	headers := map[string]string{"Accept": "application/json"}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}
	body, err := g.transport.SendJSON(ctx, http.MethodPost, endpoint, headers, in, reply)
	if err != nil {
		var gerr *entities.GatewayError
		if errors.As(err, &gerr) && gerr.Kind == entities.GatewayErrorHTTPStatus && len(body) > 0 {
			var failed httpReply
			if DecodeJSON(g.desc.Module, body, &failed) == nil && failed.Error != nil {
				gerr.Code = failed.Error.Code
				gerr.Message = failed.Error.Message
			}
		}
		return err
	}
	if reply.Error != nil || strings.EqualFold(reply.Status, "declined") {
		gerr := &entities.GatewayError{Gateway: g.desc.Module, Kind: entities.GatewayErrorHTTPStatus, StatusCode: http.StatusPaymentRequired, Code: "declined", Message: "the payment was declined"}
		if reply.Error != nil {
			gerr.Code, gerr.Message = reply.Error.Code, reply.Error.Message
		}
		return gerr
	}
	if reply.ID == "" {
		return &entities.GatewayError{Gateway: g.desc.Module, Kind: entities.GatewayErrorMalformedResponse, Message: "the payment processor did not return a transaction id"}
	}
	return nil
}

func (g *HTTPGateway) response(reply httpReply, requested decimal.Decimal) entities.GatewayResponse {
	amount := reply.Amount
	if amount.IsZero() {
		amount = requested
	}
	return entities.GatewayResponse{
		TxnID:    reply.ID,
		Amount:   amount,
		Fees:     reply.Fees,
		Captured: reply.Captured,
		PayType:  reply.PayType,
		Raw:      map[string]any{"status": reply.Status},
	}
}
