package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"order_ledger/internal/adapter/http/handlers/mocks"
	"order_ledger/internal/adapter/http/middleware"
	"order_ledger/internal/adapter/persistence/session"
	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func doJSON(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
}

func newOrderRouter(uc usecase.IOrderUseCase, store *session.MemoryStore) *gin.Engine {
	h := NewOrderHandler(uc, NewSessions(store, 3600, false), zap.NewNop())
	r := gin.New()
	r.GET("/v1/orders/current", h.GetCurrent)
	r.PUT("/v1/orders/current/cart", h.UpdateCart)
	r.POST("/v1/orders/current/checkout", h.Checkout)
	r.POST("/v1/orders/current/shipmethod", h.ShipMethod)
	r.POST("/v1/orders/current/confirm", h.Confirm)
	return r
}

func TestOrderHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session1 := map[string]string{SessionHeader: "s1"}

	t.Run("new session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newOrderRouter(mocks.NewMockIOrderUseCase(ctrl), session.NewMemoryStore())

		w := doJSON(r, http.MethodGet, "/v1/orders/current", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get(SessionHeader) == "" || w.Header().Get("Set-Cookie") == "" {
			t.Fatalf("expected a new session id, got %v", w.Header())
		}
	})

	t.Run("update cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := session.NewMemoryStore()
		r := newOrderRouter(mocks.NewMockIOrderUseCase(ctrl), store)

		body := `{"items":[{"product_id":"shirt","price_id":"shirt-m","quantity":2,"unit_price":"25.00"}]}`
		w := doJSON(r, http.MethodPut, "/v1/orders/current/cart", body, session1)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		order, _ := store.Load(context.Background(), "s1")
		if order.State != entities.OrderStateCheckout || !order.Cart.Totals.Total.Equal(decimal.RequireFromString("50")) {
			t.Fatalf("unexpected stored order: %+v", order.Cart.Totals)
		}

		w = doJSON(r, http.MethodPut, "/v1/orders/current/cart", `{"items":[{"product_id":"shirt","price_id":"p","quantity":0,"unit_price":"1"}]}`, session1)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("checkout redirects to confirm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		store := session.NewMemoryStore()
		r := newOrderRouter(uc, store)

		uc.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *entities.OrderContext, f entities.CheckoutForm) (usecase.CheckoutResult, error) {
				if f.Email != "ada@example.com" || f.ClientIP == "" {
					t.Errorf("unexpected form: %+v", f)
				}
				o.Customer.Email = f.Email
				o.State = entities.OrderStateAwaitingConfirmation
				return usecase.CheckoutResult{State: o.State, Redirect: usecase.RedirectConfirm}, nil
			})

		w := doJSON(r, http.MethodPost, "/v1/orders/current/checkout", `{"email":"ada@example.com","paymethod":"credit-card"}`, session1)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		decodeBody(t, w, &got)
		if got["redirect"] != "confirm" {
			t.Fatalf("expected confirm redirect, got %v", got)
		}
		order, _ := store.Load(context.Background(), "s1")
		if order.State != entities.OrderStateAwaitingConfirmation || order.Customer.Email != "ada@example.com" {
			t.Fatalf("expected order to be saved, got %+v", order)
		}
	})

	t.Run("checkout rejects malformed email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newOrderRouter(mocks.NewMockIOrderUseCase(ctrl), session.NewMemoryStore())
		w := doJSON(r, http.MethodPost, "/v1/orders/current/checkout", `{"email":"not-an-email"}`, session1)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("gateway failure keeps the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		store := session.NewMemoryStore()
		r := newOrderRouter(uc, store)

		uc.EXPECT().Confirmed(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *entities.OrderContext) (usecase.CheckoutResult, error) {
				o.State = entities.OrderStateCheckout
				return usecase.CheckoutResult{}, usecase.ErrGatewayComm
			})

		w := doJSON(r, http.MethodPost, "/v1/orders/current/confirm", "", session1)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
		order, _ := store.Load(context.Background(), "s1")
		if order.State != entities.OrderStateCheckout {
			t.Fatalf("expected failed step to be saved, got %s", order.State)
		}
	})

	t.Run("confirm out of order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newOrderRouter(uc, session.NewMemoryStore())
		uc.EXPECT().Confirmed(gomock.Any(), gomock.Any()).Return(usecase.CheckoutResult{}, usecase.ErrInvalidTransition)

		w := doJSON(r, http.MethodPost, "/v1/orders/current/confirm", "", session1)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("ship method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := newOrderRouter(uc, session.NewMemoryStore())
		uc.EXPECT().ShipMethod(gomock.Any(), gomock.Any(), "express").Return(usecase.CheckoutResult{}, usecase.ErrValidation)

		w := doJSON(r, http.MethodPost, "/v1/orders/current/shipmethod", `{"method":"express"}`, session1)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestEventHandler_AddEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setupWithStore := func(t *testing.T, store *session.MemoryStore) (*mocks.MockIOrderEventLedger, *gin.Engine) {
		ctrl := gomock.NewController(t)
		ledger := mocks.NewMockIOrderEventLedger(ctrl)
		r := gin.New()
		r.POST("/v1/events", NewEventHandler(ledger, NewSessions(store, 3600, false), zap.NewNop()).AddEvent)
		return ledger, r
	}
	setup := func(t *testing.T) (*mocks.MockIOrderEventLedger, *gin.Engine) {
		return setupWithStore(t, session.NewMemoryStore())
	}

	cartFor := func(t *testing.T, store *session.MemoryStore, id string) {
		t.Helper()
		order := entities.NewOrderContext(id)
		order.Cart.Items = []entities.CartItem{{ProductID: "shirt", PriceID: "shirt-m", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")}}
		order.Cart.Retotal()
		if err := store.Save(context.Background(), order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	settles := func(t *testing.T, store *session.MemoryStore, id string, w *httptest.ResponseRecorder) {
		t.Helper()
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		saved, err := store.Load(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !saved.Cart.Empty() || saved.LastPurchaseID != "p1" {
			t.Fatalf("expected settled session, got cart=%v last=%q", saved.Cart.Items, saved.LastPurchaseID)
		}
	}

	materialize := func(_ context.Context, order *entities.OrderContext, _ string, _ entities.EventType, _ map[string]any) (entities.OrderEvent, error) {
		order.PurchaseID = "p1"
		return entities.OrderEvent{ID: "e1", Type: entities.EventAuthed, PurchaseID: "p1", Amount: decimal.RequireFromString("50")}, nil
	}

	t.Run("unknown type", func(t *testing.T) {
		_, r := setup(t)
		w := doJSON(r, http.MethodPost, "/v1/events", `{"type":"teleport","payload":{}}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("orphan authed", func(t *testing.T) {
		ledger, r := setup(t)
		ledger.EXPECT().Append(gomock.Any(), gomock.Nil(), "", entities.EventAuthed, gomock.Any()).
			Return(entities.OrderEvent{ID: "e1", Type: entities.EventAuthed, PurchaseID: "p1", Amount: decimal.RequireFromString("50")}, nil)

		w := doJSON(r, http.MethodPost, "/v1/events", `{"purchase_id":null,"type":"AUTHED","payload":{"txnid":"txn-1","amount":"50"}}`, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		decodeBody(t, w, &got)
		if got["purchase_id"] != "p1" || got["polarity"] != "debit" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("orphan authed settles session from body", func(t *testing.T) {
		store := session.NewMemoryStore()
		cartFor(t, store, "s-callback")
		ledger, r := setupWithStore(t, store)
		ledger.EXPECT().Append(gomock.Any(), gomock.Not(gomock.Nil()), "", entities.EventAuthed, gomock.Any()).DoAndReturn(materialize)

		w := doJSON(r, http.MethodPost, "/v1/events", `{"purchase_id":null,"session_id":"s-callback","type":"authed","payload":{"txnid":"TXN-IPN","amount":"50.00"}}`, nil)
		settles(t, store, "s-callback", w)
	})

	t.Run("orphan authed settles session from header", func(t *testing.T) {
		store := session.NewMemoryStore()
		cartFor(t, store, "s-header")
		ledger, r := setupWithStore(t, store)
		ledger.EXPECT().Append(gomock.Any(), gomock.Not(gomock.Nil()), "", entities.EventAuthed, gomock.Any()).DoAndReturn(materialize)

		w := doJSON(r, http.MethodPost, "/v1/events", `{"type":"authed","payload":{"txnid":"TXN-IPN","amount":"50.00"}}`, map[string]string{SessionHeader: "s-header"})
		settles(t, store, "s-header", w)
	})

	t.Run("unknown session passes no order", func(t *testing.T) {
		ledger, r := setup(t)
		ledger.EXPECT().Append(gomock.Any(), gomock.Nil(), "", entities.EventAuthed, gomock.Any()).
			Return(entities.OrderEvent{}, usecase.ErrIntegrity)

		w := doJSON(r, http.MethodPost, "/v1/events", `{"session_id":"gone","type":"authed","payload":{"txnid":"TXN-IPN","amount":"50.00"}}`, nil)
		if w.Code == http.StatusCreated {
			t.Fatalf("expected rejection, got %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		ledger, r := setup(t)
		ledger.EXPECT().Append(gomock.Any(), gomock.Nil(), "p1", entities.EventCaptured, gomock.Any()).
			Return(entities.OrderEvent{}, &entities.MissingFieldError{Type: entities.EventCaptured, Missing: []string{"fees"}})

		w := doJSON(r, http.MethodPost, "/v1/events", `{"purchase_id":"p1","type":"captured","payload":{"txnid":"t"}}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		ledger, r := setup(t)
		ledger.EXPECT().Append(gomock.Any(), gomock.Nil(), "p1", entities.EventRefunded, gomock.Any()).
			Return(entities.OrderEvent{}, entities.ErrDuplicateTransaction)

		w := doJSON(r, http.MethodPost, "/v1/events", `{"purchase_id":"p1","type":"refunded","payload":{}}`, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestPurchaseHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*mocks.MockITransactionUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockITransactionUseCase(ctrl)
		h := NewPurchaseHandler(uc, zap.NewNop())
		r := gin.New()
		r.GET("/v1/purchases/:id", h.GetPurchase)
		r.GET("/v1/purchases/:id/events", h.ListEvents)
		admin := r.Group("/v1/purchases", func(c *gin.Context) {
			c.Set(middleware.UserKey, "merchant")
			c.Next()
		})
		admin.POST("/:id/capture", h.Capture)
		admin.POST("/:id/refund", h.Refund)
		admin.POST("/:id/void", h.Void)
		return uc, r
	}

	summary := usecase.PurchaseSummary{
		Purchase: entities.Purchase{ID: "p1", TxnID: "txn-1", TxnStatus: entities.TxnStatusAuthed, Total: decimal.RequireFromString("50")},
		Balance:  decimal.RequireFromString("-50"),
		Events:   []entities.OrderEvent{{ID: "e1", Type: entities.EventAuthed, Amount: decimal.RequireFromString("50")}},
	}

	t.Run("get", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetPurchase(gomock.Any(), "p1").Return(summary, nil)
		w := doJSON(r, http.MethodGet, "/v1/purchases/p1", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		decodeBody(t, w, &got)
		if got["balance"] != "-50.00" || got["txnstatus"] != "AUTHED" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("events", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetPurchase(gomock.Any(), "p1").Return(summary, nil)
		w := doJSON(r, http.MethodGet, "/v1/purchases/p1/events", "", nil)
		var got []map[string]any
		decodeBody(t, w, &got)
		if len(got) != 1 || got[0]["type"] != "authed" {
			t.Fatalf("unexpected events: %v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetPurchase(gomock.Any(), "nope").Return(usecase.PurchaseSummary{}, usecase.ErrPurchaseNotFound)
		w := doJSON(r, http.MethodGet, "/v1/purchases/nope", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("capture", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Capture(gomock.Any(), "p1", gomock.Any(), "merchant").DoAndReturn(
			func(_ context.Context, _ string, amount decimal.Decimal, _ string) (entities.OrderEvent, error) {
				if !amount.Equal(decimal.RequireFromString("50")) {
					t.Errorf("expected 50, got %s", amount)
				}
				return entities.OrderEvent{ID: "e2", Type: entities.EventCaptured, Amount: amount}, nil
			})
		w := doJSON(r, http.MethodPost, "/v1/purchases/p1/capture", `{"amount":"50.00"}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("capture rejects bad amount", func(t *testing.T) {
		_, r := setup(t)
		w := doJSON(r, http.MethodPost, "/v1/purchases/p1/capture", `{"amount":"-1"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("refund unsupported", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Refund(gomock.Any(), "p1", gomock.Any(), "merchant", "dup").Return(entities.OrderEvent{}, usecase.ErrRefundUnsupported)
		w := doJSON(r, http.MethodPost, "/v1/purchases/p1/refund", `{"amount":"10","reason":"dup"}`, nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("void without body", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Void(gomock.Any(), "p1", "merchant", "").Return(entities.OrderEvent{ID: "e3", Type: entities.EventVoided}, nil)
		w := doJSON(r, http.MethodPost, "/v1/purchases/p1/void", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("lock timeout", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Void(gomock.Any(), "p1", "merchant", "").Return(entities.OrderEvent{}, usecase.ErrLockTimeout)
		w := doJSON(r, http.MethodPost, "/v1/purchases/p1/void", "", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestGatewayHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIGatewayRegistry(ctrl)
	registry.EXPECT().Activated().Return([]string{"http"})
	registry.EXPECT().PayOptions().Return([]entities.PayOption{{Slug: "credit-card", Label: "Credit Card", Processor: "http"}})
	registry.EXPECT().PayCards().Return(nil)
	registry.EXPECT().RequiresSecureTransport().Return(true)

	r := gin.New()
	r.GET("/v1/gateways", NewGatewayHandler(registry).List)
	r.GET("/v1/ping", Ping)

	w := doJSON(r, http.MethodGet, "/v1/gateways", "", nil)
	var got struct {
		Activated  []string             `json:"activated"`
		PayOptions []entities.PayOption `json:"pay_options"`
		Secure     bool                 `json:"secure"`
	}
	decodeBody(t, w, &got)
	if len(got.Activated) != 1 || got.PayOptions[0].Slug != "credit-card" || !got.Secure {
		t.Fatalf("unexpected body: %+v", got)
	}

	if w := doJSON(r, http.MethodGet, "/v1/ping", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
