package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type memPurchases struct {
	mu    sync.Mutex
	byID  map[string]entities.Purchase
	byTxn map[string]string
}

func newMemPurchases() *memPurchases {
	return &memPurchases{byID: map[string]entities.Purchase{}, byTxn: map[string]string{}}
}

func (r *memPurchases) Create(_ context.Context, p entities.Purchase) (entities.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTxn[p.TxnID]; ok {
		return entities.Purchase{}, entities.ErrDuplicateTransaction
	}
	r.byID[p.ID] = p
	r.byTxn[p.TxnID] = p.ID
	return p, nil
}

func (r *memPurchases) GetByID(_ context.Context, id string) (entities.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memPurchases) GetByTxnID(_ context.Context, txnID string) (entities.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[r.byTxn[txnID]], nil
}

func (r *memPurchases) UpdateStatus(_ context.Context, id string, from, to entities.TxnStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.TxnStatus != from {
		return false, nil
	}
	p.TxnStatus = to
	r.byID[id] = p
	return true, nil
}

func (r *memPurchases) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memEvents struct {
	mu     sync.Mutex
	events []entities.OrderEvent
	keys   map[string]string
}

func newMemEvents() *memEvents {
	return &memEvents{keys: map[string]string{}}
}

func (r *memEvents) Create(_ context.Context, e entities.OrderEvent) (entities.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Type.Transactional() && e.TxnID != "" {
		key := e.PurchaseID + "|" + string(e.Type) + "|" + e.TxnID
		if _, ok := r.keys[key]; ok {
			return entities.OrderEvent{}, entities.ErrDuplicateTransaction
		}
		r.keys[key] = e.ID
	}
	r.events = append(r.events, e)
	return e, nil
}

func (r *memEvents) ListByPurchase(_ context.Context, purchaseID string) ([]entities.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.OrderEvent
	for _, e := range r.events {
		if e.PurchaseID == purchaseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEvents) FindByTxn(_ context.Context, purchaseID string, t entities.EventType, txnID string) (entities.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.PurchaseID == purchaseID && e.Type == t && e.TxnID == txnID {
			return e, nil
		}
	}
	return entities.OrderEvent{}, nil
}

func (r *memEvents) ofType(t entities.EventType) []entities.OrderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.OrderEvent
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *memEvents) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// memLocks is a process-local ILockManager.
type memLocks struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newMemLocks() *memLocks {
	return &memLocks{held: map[string]chan struct{}{}}
}

type memLockHandle struct {
	locks *memLocks
	key   string
}

func (h memLockHandle) Key() string { return h.key }

func (h memLockHandle) Release(context.Context) error {
	h.locks.mu.Lock()
	defer h.locks.mu.Unlock()
	if ch, ok := h.locks.held[h.key]; ok {
		close(ch)
		delete(h.locks.held, h.key)
	}
	return nil
}

func (l *memLocks) Acquire(ctx context.Context, key string, timeout time.Duration) (interfaces.ILockHandle, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			l.held[key] = make(chan struct{})
			l.mu.Unlock()
			return memLockHandle{locks: l, key: key}, nil
		}
		l.mu.Unlock()
		select {
		case <-ch:
		case <-deadline.C:
			return nil, entities.ErrLockTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

type memCustomers struct {
	mu        sync.Mutex
	byEmail   map[string]entities.Customer
	addresses []entities.BillingAddress
}

func newMemCustomers() *memCustomers {
	return &memCustomers{byEmail: map[string]entities.Customer{}}
}

func (r *memCustomers) GetByEmail(_ context.Context, email string) (entities.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

func (r *memCustomers) Save(_ context.Context, c entities.Customer) (entities.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.byEmail[c.Email] = c
	return c, nil
}

func (r *memCustomers) SaveAddress(_ context.Context, kind string, a entities.BillingAddress) (entities.BillingAddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = kind + "-" + uuid.NewString()
	}
	r.addresses = append(r.addresses, a)
	return a, nil
}

type memStats struct {
	mu      sync.Mutex
	applied map[string]bool
	sold    map[string]int
}

func newMemStats() *memStats {
	return &memStats{applied: map[string]bool{}, sold: map[string]int{}}
}

func (r *memStats) ApplySold(_ context.Context, key string, quantities map[string]int, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applied[key] {
		return false, nil
	}
	r.applied[key] = true
	for id, q := range quantities {
		r.sold[id] += q * delta
	}
	return true, nil
}

func (r *memStats) soldOf(productID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sold[productID]
}

type memInventory struct {
	mu    sync.Mutex
	taken map[string]int
}

func (r *memInventory) Decrement(_ context.Context, priceID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken == nil {
		r.taken = map[string]int{}
	}
	r.taken[priceID] += quantity
	return nil
}

type memPromotions struct {
	mu   sync.Mutex
	used []string
}

func (r *memPromotions) MarkUsed(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.used = append(r.used, ids...)
	return nil
}

type recNotifier struct {
	mu        sync.Mutex
	receipts  []string
	passwords []string
}

func (n *recNotifier) OrderReceipt(_ context.Context, _ entities.Purchase, to string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receipts = append(n.receipts, to)
	return nil
}

func (n *recNotifier) AccountCreated(_ context.Context, _ entities.Customer, password string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.passwords = append(n.passwords, password)
	return nil
}

func (n *recNotifier) receiptCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.receipts)
}

// stubGateway answers every call with the configured response or error.
type stubGateway struct {
	desc     entities.GatewayDescriptor
	charge   entities.GatewayResponse
	err      error
	mu       sync.Mutex
	charges  int
	captures int
	refunds  int
}

func newStubGateway(module string, refunds bool) *stubGateway {
	return &stubGateway{desc: entities.GatewayDescriptor{
		Module:  module,
		Name:    module + " gateway",
		Cards:   []string{"visa", "mc"},
		Refunds: refunds,
	}}
}

func (g *stubGateway) Descriptor() entities.GatewayDescriptor { return g.desc }

func (g *stubGateway) AcceptedCards() []entities.PayCard { return g.desc.AcceptedPayCards() }

func (g *stubGateway) Charge(_ context.Context, _ entities.OrderSnapshot, amount decimal.Decimal) (entities.GatewayResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges++
	if g.err != nil {
		return entities.GatewayResponse{}, g.err
	}
	return g.charge, nil
}

func (g *stubGateway) Capture(_ context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captures++
	if g.err != nil {
		return entities.GatewayResponse{}, g.err
	}
	return entities.GatewayResponse{TxnID: txnID, Amount: amount, Captured: true}, nil
}

func (g *stubGateway) Refund(_ context.Context, txnID string, amount decimal.Decimal) (entities.GatewayResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return entities.GatewayResponse{}, g.err
	}
	g.refunds++
	if g.refunds > 1 {
		txnID = fmt.Sprintf("%s-%d", txnID, g.refunds)
	}
	return entities.GatewayResponse{TxnID: txnID + "-r", Amount: amount}, nil
}

func (g *stubGateway) Void(_ context.Context, txnID string) (entities.GatewayResponse, error) {
	if g.err != nil {
		return entities.GatewayResponse{}, g.err
	}
	return entities.GatewayResponse{TxnID: txnID}, nil
}

func (g *stubGateway) SupportsRefund() bool          { return g.desc.Refunds }
func (g *stubGateway) RequiresSecureTransport() bool { return g.desc.Secure }

func (g *stubGateway) chargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.charges
}

// testShop wires the order core over in-memory storage.
type testShop struct {
	purchases *memPurchases
	events    *memEvents
	customers *memCustomers
	stats     *memStats
	inventory *memInventory
	promos    *memPromotions
	notifier  *recNotifier
	ledger    *OrderEventLedger
	registry  *GatewayRegistry
	orders    *OrderUseCase
	txns      *TransactionUseCase
}

func newTestShop(t *testing.T, settings entities.Settings, gateways ...interfaces.IPaymentGateway) *testShop {
	t.Helper()
	logger := zap.NewNop()
	s := &testShop{
		purchases: newMemPurchases(),
		events:    newMemEvents(),
		customers: newMemCustomers(),
		stats:     newMemStats(),
		inventory: &memInventory{},
		promos:    &memPromotions{},
		notifier:  &recNotifier{},
	}
	if settings.LockTimeout == 0 {
		settings.LockTimeout = 2 * time.Second
	}

	free := newStubGateway("free-order", false)
	free.desc.Name = "Free Order"
	free.charge = entities.GatewayResponse{TxnID: "free-1", Captured: true}

	s.registry = NewGatewayRegistry(settings.ActiveGateways, logger, append(gateways, free)...)
	s.ledger = NewOrderEventLedger(s.events, s.purchases, newMemLocks(), settings, logger,
		NewPurchaseStatusObserver(s.purchases, logger),
		NewSalesStatsObserver(s.purchases, s.events, s.stats, logger),
	)
	s.orders = NewOrderUseCase(OrderUseCaseDeps{
		Ledger:     s.ledger,
		Registry:   s.registry,
		FreeOrder:  free,
		Purchases:  s.purchases,
		Customers:  s.customers,
		Inventory:  s.inventory,
		Promotions: s.promos,
		Notifier:   s.notifier,
		Settings:   settings,
		Logger:     logger,
	})
	s.ledger.SetMaterializer(s.orders)
	s.txns = NewTransactionUseCase(s.ledger, s.registry, s.purchases, logger)
	return s
}

// shippableOrder is a $50 order: two shirts at $20 plus $10 ground shipping.
func shippableOrder(sessionID string) *entities.OrderContext {
	o := entities.NewOrderContext(sessionID)
	o.Cart = entities.Cart{
		Items: []entities.CartItem{{
			ProductID: "shirt", PriceID: "shirt-m", Name: "Shirt", Quantity: 2,
			UnitPrice: decimal.RequireFromString("20.00"), Shipped: true, Inventory: true, Stock: 5,
		}},
		ShipOptions: []entities.ShipOption{{Method: "ground", Rate: decimal.RequireFromString("10.00")}},
		ShipMethod:  "ground",
		TaxRate:     decimal.Zero,
	}
	o.Cart.Retotal()
	o.State = entities.OrderStateCheckout
	return o
}

func checkoutForm(email string) entities.CheckoutForm {
	year := time.Now().Year() + 2
	return entities.CheckoutForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Phone:     "+1 (555) 010-9999 ext 12 #",
		Billing: entities.BillingForm{
			Address:       entities.Address{Address: "12 Analytical St", City: "London", State: "LDN", Country: "GB", Postcode: "N1 9GU"},
			Card:          "4111 1111 1111 1111",
			CardType:      "visa",
			CardExpiresMM: "12",
			CardExpiresYY: strconv.Itoa(year % 100),
			CVV:           "123",
			CardHolder:    "Ada Lovelace",
		},
		SameShipAddress: true,
		ShipMethod:      "ground",
		ClientIP:        "203.0.113.7",
	}
}

// populate fills the order as a successful checkout would, without running it.
func populate(o *entities.OrderContext, email string) {
	o.Customer = entities.Customer{FirstName: "Ada", LastName: "Lovelace", Email: email}
	o.Billing = entities.BillingAddress{
		Address: entities.Address{Address: "12 Analytical St", City: "London", Country: "GB", Postcode: "N1 9GU"},
		Card:    "4111111111111111", CardType: "Visa", CVV: "123", CardHolder: "Ada Lovelace",
	}
	o.Shipping = o.Billing.Address
}
