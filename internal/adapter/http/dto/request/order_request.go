package request

import (
	"fmt"
	"strings"

	"order_ledger/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type AddressRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Address2 string `json:"xaddress"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

func (a AddressRequest) toEntity() entities.Address {
	return entities.Address{
		Name:     strings.TrimSpace(a.Name),
		Address:  strings.TrimSpace(a.Address),
		Address2: strings.TrimSpace(a.Address2),
		City:     strings.TrimSpace(a.City),
		State:    strings.TrimSpace(a.State),
		Country:  strings.TrimSpace(a.Country),
		Postcode: strings.TrimSpace(a.Postcode),
	}
}

type BillingRequest struct {
	AddressRequest
	Card          string `json:"card"`
	CardType      string `json:"cardtype"`
	CardExpiresMM string `json:"cardexpires-mm"`
	CardExpiresYY string `json:"cardexpires-yy"`
	CVV           string `json:"cvv"`
	CardHolder    string `json:"cardholder"`
}

// CheckoutRequest is the checkout form. Field rules beyond shape are applied by
// the order validator so problems come back as reasons.
type CheckoutRequest struct {
	Action          string            `json:"checkout"`
	FirstName       string            `json:"firstname"`
	LastName        string            `json:"lastname"`
	Email           string            `json:"email" binding:"omitempty,email"`
	Phone           string            `json:"phone"`
	Company         string            `json:"company"`
	LoginName       string            `json:"loginname"`
	Password        string            `json:"password"`
	ConfirmPassword string            `json:"confirm-password"`
	Marketing       bool              `json:"marketing"`
	Clickwrap       bool              `json:"clickwrap"`
	ClickwrapShown  bool              `json:"clickwrap_shown"`
	Info            map[string]string `json:"info"`
	Data            map[string]string `json:"data"`
	Billing         BillingRequest    `json:"billing"`
	Shipping        AddressRequest    `json:"shipping"`
	SameShipAddress bool              `json:"sameshipaddress"`
	ShipMethod      string            `json:"shipmethod"`
	PayMethod       string            `json:"paymethod"`
	UpdateShipping  bool              `json:"update_shipping"`
	Confirm         bool              `json:"confirm"`
}

func (r CheckoutRequest) ToForm(clientIP string) entities.CheckoutForm {
	return entities.CheckoutForm{
		Action:          r.Action,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Company:         r.Company,
		LoginName:       r.LoginName,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Marketing:       r.Marketing,
		Clickwrap:       r.Clickwrap,
		ClickwrapShown:  r.ClickwrapShown,
		Info:            r.Info,
		Data:            r.Data,
		Billing: entities.BillingForm{
			Address:       r.Billing.toEntity(),
			Card:          r.Billing.Card,
			CardType:      r.Billing.CardType,
			CardExpiresMM: r.Billing.CardExpiresMM,
			CardExpiresYY: r.Billing.CardExpiresYY,
			CVV:           r.Billing.CVV,
			CardHolder:    r.Billing.CardHolder,
		},
		Shipping:        r.Shipping.toEntity(),
		SameShipAddress: r.SameShipAddress,
		ShipMethod:      r.ShipMethod,
		PayMethod:       r.PayMethod,
		UpdateShipping:  r.UpdateShipping,
		Confirm:         r.Confirm,
		ClientIP:        clientIP,
	}
}

type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	PriceID   string `json:"price_id" binding:"required"`
	Name      string `json:"name"`
	Option    string `json:"option"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	UnitPrice string `json:"unit_price" binding:"required"`
	Shipped   bool   `json:"shipped"`
	Inventory bool   `json:"inventory"`
	Stock     int    `json:"stock"`
	Download  string `json:"download"`
}

type PromotionRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Discount string `json:"discount" binding:"required"`
}

type ShipOptionRequest struct {
	Method string `json:"method" binding:"required"`
	Rate   string `json:"rate" binding:"required"`
}

// CartRequest replaces the cart contents of the current order.
type CartRequest struct {
	Items        []CartItemRequest   `json:"items" binding:"dive"`
	Promos       []PromotionRequest  `json:"promos" binding:"dive"`
	ShipOptions  []ShipOptionRequest `json:"ship_options" binding:"dive"`
	ShipMethod   string              `json:"ship_method"`
	TaxRate      string              `json:"tax_rate"`
	FreeShipping bool                `json:"free_shipping"`
}

// ToCart parses amounts and returns a retotaled cart.
func (r CartRequest) ToCart() (entities.Cart, error) {
	cart := entities.Cart{
		ShipMethod:   r.ShipMethod,
		FreeShipping: r.FreeShipping,
		TaxRate:      decimal.Zero,
	}
	for _, it := range r.Items {
		price, err := money(it.UnitPrice)
		if err != nil {
			return entities.Cart{}, fmt.Errorf("item %s: %w", it.PriceID, err)
		}
		cart.Items = append(cart.Items, entities.CartItem{
			ProductID: it.ProductID,
			PriceID:   it.PriceID,
			Name:      it.Name,
			Option:    it.Option,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Shipped:   it.Shipped,
			Inventory: it.Inventory,
			Stock:     it.Stock,
			Download:  it.Download,
		})
	}
	for _, p := range r.Promos {
		d, err := money(p.Discount)
		if err != nil {
			return entities.Cart{}, fmt.Errorf("promotion %s: %w", p.ID, err)
		}
		cart.Promos = append(cart.Promos, entities.Promotion{ID: p.ID, Name: p.Name, Discount: d})
	}
	for _, o := range r.ShipOptions {
		rate, err := money(o.Rate)
		if err != nil {
			return entities.Cart{}, fmt.Errorf("ship option %s: %w", o.Method, err)
		}
		cart.ShipOptions = append(cart.ShipOptions, entities.ShipOption{Method: o.Method, Rate: rate})
	}
	if r.TaxRate != "" {
		rate, err := money(r.TaxRate)
		if err != nil {
			return entities.Cart{}, fmt.Errorf("tax rate: %w", err)
		}
		cart.TaxRate = rate
	}
	cart.Retotal()
	return cart, nil
}

type ShipMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// EventRequest adds an event to the ledger. PurchaseID is null for orphan events.
// SessionID names the shopper's order an orphan authed callback settles.
type EventRequest struct {
	PurchaseID *string        `json:"purchase_id"`
	SessionID  string         `json:"session_id"`
	Type       string         `json:"type" binding:"required"`
	Payload    map[string]any `json:"payload"`
}

func (r EventRequest) Parent() string {
	if r.PurchaseID == nil {
		return ""
	}
	return strings.TrimSpace(*r.PurchaseID)
}

type CaptureRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type RefundRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

type VoidRequest struct {
	Reason string `json:"reason"`
}

// ParseAmount reads a positive money amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := money(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive: %s", s)
	}
	return d, nil
}

func money(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}
