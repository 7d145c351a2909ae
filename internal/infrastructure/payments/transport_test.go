package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order_ledger/internal/domain/entities"

	"go.uber.org/zap"
)

func gatewayError(t *testing.T, err error) *entities.GatewayError {
	t.Helper()
	var gerr *entities.GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GatewayError, got %v", err)
	}
	return gerr
}

func TestTransport_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		var gotMethod, gotUA, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotUA = r.Method, r.UserAgent()
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		tr := NewTransport("test", srv.Client(), time.Second, "order-ledger/1.0", zap.NewNop())
		body, err := tr.Send(ctx, Request{URL: srv.URL, Body: []byte("a=1")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok":true}` || gotMethod != http.MethodPost || gotUA != "order-ledger/1.0" || gotBody != "a=1" {
			t.Fatalf("unexpected exchange: %s %s %s %s", body, gotMethod, gotUA, gotBody)
		}
	})

	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("down"))
		}))
		defer srv.Close()

		body, err := NewTransport("test", srv.Client(), time.Second, "", nil).Send(ctx, Request{URL: srv.URL})
		gerr := gatewayError(t, err)
		if gerr.Kind != entities.GatewayErrorHTTPStatus || gerr.StatusCode != 503 || gerr.ErrorCode() != "http-503" {
			t.Fatalf("unexpected error: %+v", gerr)
		}
		if string(body) != "down" {
			t.Fatalf("expected body on status error, got %q", body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		_, err := NewTransport("test", srv.Client(), time.Second, "", nil).Send(ctx, Request{URL: srv.URL})
		if gerr := gatewayError(t, err); gerr.Kind != entities.GatewayErrorCommunication || gerr.ErrorCode() != "noresponse" {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewTransport("test", nil, time.Second, "", nil).Send(ctx, Request{URL: url})
		if gerr := gatewayError(t, err); gerr.Kind != entities.GatewayErrorCommunication {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		_, err := NewTransport("test", srv.Client(), time.Second, "", nil).Send(ctx, Request{URL: srv.URL, Timeout: 20 * time.Millisecond})
		if gerr := gatewayError(t, err); gerr.Kind != entities.GatewayErrorCommunication {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		var out map[string]any
		_, err := NewTransport("test", srv.Client(), time.Second, "", nil).SendJSON(ctx, http.MethodPost, srv.URL, nil, map[string]string{"a": "b"}, &out)
		if gerr := gatewayError(t, err); gerr.Kind != entities.GatewayErrorMalformedResponse {
			t.Fatalf("unexpected error: %+v", gerr)
		}
	})
}

func TestEncodeForm(t *testing.T) {
	got := EncodeForm(map[string]any{
		"amount": "10.00",
		"card":   map[string]any{"number": "4111", "exp": map[string]string{"month": "12"}},
		"items":  []string{"a b", "c&d"},
		"empty":  nil,
	})
	want := "amount=10.00&card%5Bexp%5D%5Bmonth%5D=12&card%5Bnumber%5D=4111&empty=&items=a+b&items=c%26d"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
