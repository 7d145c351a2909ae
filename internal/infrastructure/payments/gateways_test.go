package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order_ledger/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func snapshot(capture bool) entities.OrderSnapshot {
	return entities.OrderSnapshot{
		SessionID: "s1",
		Customer:  entities.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Billing: entities.BillingAddress{
			Card:        "4111111111111111",
			CardType:    "Visa",
			CVV:         "123",
			CardHolder:  "Ada Lovelace",
			CardExpires: time.Date(2030, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		Capture:  capture,
		ClientIP: "203.0.113.7",
		Data:     map[string]string{},
	}
}

func TestHTTPGateway(t *testing.T) {
	ctx := context.Background()
	var lastPath string
	var lastCharge httpCharge
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/charges":
			_ = json.NewDecoder(r.Body).Decode(&lastCharge)
			if lastCharge.Card.Number == "4000000000000002" {
				w.WriteHeader(http.StatusPaymentRequired)
				_, _ = w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"ch_1","amount":"50.00","fees":"1.75","captured":` + boolJSON(lastCharge.Capture) + `,"status":"ok"}`))
		case "/charges/ch_1/capture":
			_, _ = w.Write([]byte(`{"id":"ch_1","amount":"50.00","status":"ok"}`))
		case "/charges/ch_1/refunds":
			_, _ = w.Write([]byte(`{"id":"re_1","amount":"20.00","status":"ok"}`))
		case "/charges/ch_1/void":
			_, _ = w.Write([]byte(`{"id":"ch_1","status":"ok"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"declined"}`))
		}
	}))
	defer srv.Close()

	tr := NewTransport("http", srv.Client(), time.Second, "", zap.NewNop())
	g := NewHTTPGateway(HTTPGatewayConfig{BaseURL: srv.URL + "/", APIKey: "key"}, tr, zap.NewNop())

	t.Run("auth", func(t *testing.T) {
		resp, err := g.Charge(ctx, snapshot(false), decimal.RequireFromString("50"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.TxnID != "ch_1" || resp.Captured || !resp.Fees.Equal(decimal.RequireFromString("1.75")) {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.PayID != "1111" || resp.PayType != "Visa" {
			t.Fatalf("expected truncated payid and card type, got %s %s", resp.PayID, resp.PayType)
		}
		if lastCharge.Amount != "50.00" || lastCharge.Card.ExpMonth != 12 || lastCharge.Card.ExpYear != 2030 {
			t.Fatalf("unexpected request: %+v", lastCharge)
		}
	})

	t.Run("sale", func(t *testing.T) {
		resp, err := g.Charge(ctx, snapshot(true), decimal.RequireFromString("50"))
		if err != nil || !resp.Captured {
			t.Fatalf("expected captured sale, got %+v %v", resp, err)
		}
	})

	t.Run("declined", func(t *testing.T) {
		o := snapshot(false)
		o.Billing.Card = "4000000000000002"
		_, err := g.Charge(ctx, o, decimal.RequireFromString("50"))
		gerr := gatewayError(t, err)
		if gerr.StatusCode != 402 || gerr.ErrorCode() != "card_declined" || gerr.Message != "Your card was declined." {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})

	t.Run("commands", func(t *testing.T) {
		if resp, err := g.Capture(ctx, "ch_1", decimal.RequireFromString("50")); err != nil || !resp.Captured {
			t.Fatalf("capture: %+v %v", resp, err)
		}
		resp, err := g.Refund(ctx, "ch_1", decimal.RequireFromString("20"))
		if err != nil || resp.TxnID != "re_1" || !resp.Amount.Equal(decimal.RequireFromString("20")) {
			t.Fatalf("refund: %+v %v", resp, err)
		}
		if _, err := g.Void(ctx, "ch_1"); err != nil || lastPath != "/charges/ch_1/void" {
			t.Fatalf("void: %v %s", err, lastPath)
		}
		_, err = g.Void(ctx, "ch_2")
		if gatewayError(t, err).ErrorCode() != "declined" {
			t.Fatalf("expected declined status to fail, got %v", err)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		bad := NewHTTPGateway(HTTPGatewayConfig{BaseURL: srv.URL}, tr, zap.NewNop())
		_, err := bad.Charge(ctx, snapshot(false), decimal.RequireFromString("50"))
		if gerr := gatewayError(t, err); gerr.StatusCode != 401 {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestFreeOrderGateway(t *testing.T) {
	ctx := context.Background()
	g := NewFreeOrderGateway()
	g.now = func() time.Time { return time.Unix(1700000000, 0) }

	a, err := g.Charge(ctx, snapshot(false), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TxnID == "" || !a.Captured {
		t.Fatalf("unexpected response: %+v", a)
	}
	o := snapshot(false)
	o.Customer.Email = "grace@example.com"
	b, _ := g.Charge(ctx, o, decimal.Zero)
	if a.TxnID == b.TxnID {
		t.Fatalf("expected txnid to depend on the customer")
	}

	if _, err := g.Charge(ctx, snapshot(false), decimal.RequireFromString("0.01")); err == nil {
		t.Fatalf("expected non-zero charge to fail")
	}
	if g.SupportsRefund() || g.Descriptor().Name != "Free Order" {
		t.Fatalf("unexpected descriptor: %+v", g.Descriptor())
	}
}

func TestClassifyStripeError(t *testing.T) {
	declined := classifyStripeError(&stripe.Error{HTTPStatusCode: 402, Code: stripe.ErrorCodeCardDeclined, Msg: "declined", Type: stripe.ErrorTypeCard})
	gerr := gatewayError(t, declined)
	if gerr.Kind != entities.GatewayErrorHTTPStatus || gerr.ErrorCode() != "card_declined" {
		t.Fatalf("unexpected error: %+v", gerr)
	}

	network := classifyStripeError(errors.New("dial tcp: i/o timeout"))
	if gatewayError(t, network).Kind != entities.GatewayErrorCommunication {
		t.Fatalf("expected communication error, got %v", network)
	}
}

func TestStripeGateway_MinorUnits(t *testing.T) {
	g, err := NewStripeGateway("sk_test", "USD", 2, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.minorUnits(decimal.RequireFromString("19.995")); got != 2000 {
		t.Fatalf("expected 2000, got %d", got)
	}
	if got := g.fromMinor(1999); !got.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected 19.99, got %s", got)
	}
	if _, err := NewStripeGateway("", "usd", 2, zap.NewNop()); !errors.Is(err, ErrMissingStripeKey) {
		t.Fatalf("expected ErrMissingStripeKey, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	g, err := NewMercadoPagoGateway("", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := g.Charge(context.Background(), snapshot(false), decimal.RequireFromString("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.TxnID) != 12 || resp.Captured || resp.PayID != "1111" {
		t.Fatalf("unexpected mock response: %+v", resp)
	}
	if g.Descriptor().Module != "mercadopago" {
		t.Fatalf("unexpected module %s", g.Descriptor().Module)
	}
}

func TestMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")
	if _, err := NewMercadoPagoGateway("", zap.NewNop()); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}
