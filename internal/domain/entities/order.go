package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderState is the checkout state of a session order.
type OrderState string

const (
	OrderStateEmpty                OrderState = "empty"
	OrderStateCheckout             OrderState = "checkout"
	OrderStateValidating           OrderState = "validating"
	OrderStateAwaitingConfirmation OrderState = "awaiting_confirmation"
	OrderStateProcessing           OrderState = "processing"
	OrderStateAuthorizing          OrderState = "authorizing"
	OrderStateCapturing            OrderState = "capturing"
	OrderStatePurchased            OrderState = "purchased"
	OrderStateFailed               OrderState = "failed"
)

type Customer struct {
	ID        string            `json:"id,omitempty"`
	FirstName string            `json:"firstname"`
	LastName  string            `json:"lastname"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Company   string            `json:"company,omitempty"`
	LoginName string            `json:"loginname,omitempty"`
	Password  string            `json:"password_hash,omitempty"`
	WPUser    string            `json:"wpuser,omitempty"`
	Marketing bool              `json:"marketing"`
	Info      map[string]string `json:"info,omitempty"`
}

func (c Customer) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type Address struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Address    string `json:"address"`
	Address2   string `json:"xaddress,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	Postcode   string `json:"postcode"`
}

func (a Address) Empty() bool {
	return strings.TrimSpace(a.Address) == "" && strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.Postcode) == "" && strings.TrimSpace(a.Country) == ""
}

// BillingAddress carries the card data entered at checkout. Card and CVV are
// cleared or truncated before the address is persisted.
type BillingAddress struct {
	Address
	Card        string    `json:"card,omitempty"`
	CardType    string    `json:"cardtype,omitempty"`
	CardExpires time.Time `json:"cardexpires,omitempty"`
	CardHolder  string    `json:"cardholder,omitempty"`
	CVV         string    `json:"-"`
}

type CartItem struct {
	ProductID string          `json:"product_id"`
	PriceID   string          `json:"price_id"`
	Name      string          `json:"name"`
	Option    string          `json:"option,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Shipped   bool            `json:"shipped"`
	Inventory bool            `json:"inventory"`
	Stock     int             `json:"stock"`
	Download  string          `json:"download,omitempty"`
}

func (i CartItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) InStock() bool {
	return !i.Inventory || i.Stock >= i.Quantity
}

type Promotion struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Discount decimal.Decimal `json:"discount"`
}

type ShipOption struct {
	Method string          `json:"method"`
	Rate   decimal.Decimal `json:"rate"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	// ShippingKnown is false while no shipping cost could be determined.
	ShippingKnown bool            `json:"shipping_known"`
	Shipping      decimal.Decimal `json:"shipping"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// Cart is the order's view of the shopping cart.
type Cart struct {
	Items        []CartItem      `json:"items"`
	Promos       []Promotion     `json:"promos,omitempty"`
	ShipOptions  []ShipOption    `json:"ship_options,omitempty"`
	ShipMethod   string          `json:"ship_method,omitempty"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	FreeShipping bool            `json:"free_shipping"`
	NoShipping   bool            `json:"no_shipping"`
	Totals       Totals          `json:"totals"`
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Shipped reports whether any item needs to be delivered physically.
func (c Cart) Shipped() bool {
	for _, it := range c.Items {
		if it.Shipped {
			return true
		}
	}
	return false
}

func (c Cart) ShipRate(method string) (decimal.Decimal, bool) {
	for _, o := range c.ShipOptions {
		if o.Method == method {
			return o.Rate, true
		}
	}
	return decimal.Zero, false
}

// Retotal recomputes the cart totals from items, promotions, shipping and tax rate.
func (c *Cart) Retotal() {
	t := Totals{Subtotal: decimal.Zero, Discount: decimal.Zero, Shipping: decimal.Zero, Tax: decimal.Zero}
	for _, it := range c.Items {
		t.Subtotal = t.Subtotal.Add(it.Total())
	}
	for _, p := range c.Promos {
		t.Discount = t.Discount.Add(p.Discount)
	}
	if t.Discount.GreaterThan(t.Subtotal) {
		t.Discount = t.Subtotal
	}

	switch {
	case !c.Shipped() || c.FreeShipping:
		t.ShippingKnown = true
	default:
		if rate, ok := c.ShipRate(c.ShipMethod); ok {
			t.Shipping = rate
			t.ShippingKnown = true
		}
	}

	taxable := t.Subtotal.Sub(t.Discount)
	t.Tax = taxable.Mul(c.TaxRate).Round(2)
	t.Total = taxable.Add(t.Shipping).Add(t.Tax)
	c.Totals = t
}

// OrderIsFree is true for a non-empty cart with nothing to pay.
func (c Cart) OrderIsFree() bool {
	return !c.Empty() && c.Totals.Total.IsZero()
}

// OrderContext is the session-scoped order carried through checkout.
type OrderContext struct {
	SessionID       string            `json:"session_id"`
	State           OrderState        `json:"state"`
	Customer        Customer          `json:"customer"`
	Billing         BillingAddress    `json:"billing"`
	Shipping        Address           `json:"shipping"`
	Cart            Cart              `json:"cart"`
	Data            map[string]string `json:"data,omitempty"`
	Processor       string            `json:"processor,omitempty"`
	PayMethod       string            `json:"paymethod,omitempty"`
	Gateway         string            `json:"gateway,omitempty"`
	TxnID           string            `json:"txnid,omitempty"`
	TxnStatus       TxnStatus         `json:"txnstatus"`
	PurchaseID      string            `json:"purchase,omitempty"`
	LastPurchaseID  string            `json:"last_purchase,omitempty"`
	Confirm         bool              `json:"confirm"`
	Confirmed       bool              `json:"confirmed"`
	Validated       bool              `json:"validated"`
	Freebie         bool              `json:"freebie"`
	SameShipAddress bool              `json:"sameshipaddress"`
	ClientIP        string            `json:"ip,omitempty"`
	CreatedAt       time.Time         `json:"created"`
}

func NewOrderContext(sessionID string) *OrderContext {
	return &OrderContext{
		SessionID: sessionID,
		State:     OrderStateEmpty,
		TxnStatus: TxnStatusPending,
		Data:      map[string]string{},
		CreatedAt: time.Now().UTC(),
	}
}

// Reset clears the order after a purchase or session reset. The customer and
// the last purchase id survive so the receipt can still be shown.
func (o *OrderContext) Reset() {
	customer := o.Customer
	customer.Password = ""
	last := o.LastPurchaseID
	if o.PurchaseID != "" {
		last = o.PurchaseID
	}
	*o = *NewOrderContext(o.SessionID)
	o.Customer = customer
	o.LastPurchaseID = last
}

func (o *OrderContext) Snapshot(capture bool) OrderSnapshot {
	items := make([]CartItem, len(o.Cart.Items))
	copy(items, o.Cart.Items)
	data := make(map[string]string, len(o.Data))
	for k, v := range o.Data {
		data[k] = v
	}
	return OrderSnapshot{
		SessionID: o.SessionID,
		Customer:  o.Customer,
		Billing:   o.Billing,
		Shipping:  o.Shipping,
		Items:     items,
		Totals:    o.Cart.Totals,
		PayMethod: o.PayMethod,
		Capture:   capture,
		ClientIP:  o.ClientIP,
		Data:      data,
	}
}

// CheckoutForm is the raw checkout submission.
type CheckoutForm struct {
	Action          string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Company         string
	LoginName       string
	Password        string
	ConfirmPassword string
	Marketing       bool
	Clickwrap       bool
	ClickwrapShown  bool
	Info            map[string]string
	Data            map[string]string
	Billing         BillingForm
	Shipping        Address
	SameShipAddress bool
	ShipMethod      string
	PayMethod       string
	UpdateShipping  bool
	Confirm         bool
	ClientIP        string
}

type BillingForm struct {
	Address
	Card          string
	CardType      string
	CardExpiresMM string
	CardExpiresYY string
	CVV           string
	CardHolder    string
}

// HasCard reports whether card fields were submitted at all.
func (b BillingForm) HasCard() bool {
	return b.Card != "" || b.CardExpiresMM != "" || b.CardExpiresYY != "" || b.CVV != "" || b.CardHolder != ""
}
