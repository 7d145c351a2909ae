package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnStatus is the payment status recorded on an order and its purchase.
type TxnStatus string

const (
	TxnStatusPending  TxnStatus = "PENDING"
	TxnStatusAuthed   TxnStatus = "AUTHED"
	TxnStatusCharged  TxnStatus = "CHARGED"
	TxnStatusRefunded TxnStatus = "REFUND"
	TxnStatusVoided   TxnStatus = "VOID"
)

// NextTxnStatus applies a result event to a purchase status.
// ok is false when the event does not move the status from current.
func NextTxnStatus(current TxnStatus, t EventType) (TxnStatus, bool) {
	switch t {
	case EventAuthed:
		if current == TxnStatusPending || current == "" {
			return TxnStatusAuthed, true
		}
	case EventCaptured:
		if current == TxnStatusPending || current == TxnStatusAuthed {
			return TxnStatusCharged, true
		}
	case EventRefunded:
		if current == TxnStatusCharged {
			return TxnStatusRefunded, true
		}
	case EventVoided:
		if current == TxnStatusAuthed {
			return TxnStatusVoided, true
		}
	}
	return current, false
}

// PurchasedItem is the line-item snapshot written with a purchase.
type PurchasedItem struct {
	ProductID string          `json:"product_id"`
	PriceID   string          `json:"price_id"`
	Name      string          `json:"name"`
	Option    string          `json:"option,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Download  string          `json:"download,omitempty"`
	DKey      string          `json:"dkey,omitempty"`
	Inventory bool            `json:"inventory"`
}

// Purchase is the durable record materialized once per transaction id.
//
// Storage model (DynamoDB):
//   - purchases table, PK: id
//   - purchase_txnids table, PK: txnid (uniqueness guard written in the same transaction)
type Purchase struct {
	ID         string    `json:"id"`
	TxnID      string    `json:"txnid"`
	TxnStatus  TxnStatus `json:"txnstatus"`
	Gateway    string    `json:"gateway"`
	PayMethod  string    `json:"paymethod,omitempty"`
	PayType    string    `json:"paytype,omitempty"`
	PayID      string    `json:"payid,omitempty"`
	Card       string    `json:"card,omitempty"`
	CardType   string    `json:"cardtype,omitempty"`
	CustomerID string    `json:"customer_id,omitempty"`
	BillingID  string    `json:"billing_id,omitempty"`
	ShippingID string    `json:"shipping_id,omitempty"`

	FirstName  string         `json:"firstname"`
	LastName   string         `json:"lastname"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	Company    string         `json:"company,omitempty"`
	Billing    BillingAddress `json:"billing"`
	Shipping   Address        `json:"shipping"`
	ShipMethod string         `json:"shipmethod,omitempty"`

	Items        []PurchasedItem   `json:"items"`
	Promos       map[string]string `json:"promos,omitempty"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	Discount     decimal.Decimal   `json:"discount"`
	Freight      decimal.Decimal   `json:"freight"`
	Tax          decimal.Decimal   `json:"tax"`
	Total        decimal.Decimal   `json:"total"`
	Fees         decimal.Decimal   `json:"fees"`
	TaxInclusive bool              `json:"taxing_inclusive"`
	IP           string            `json:"ip,omitempty"`
	CreatedAt    time.Time         `json:"created"`
}

// Quantities returns the purchased quantity per product.
func (p Purchase) Quantities() map[string]int {
	out := map[string]int{}
	for _, it := range p.Items {
		if it.ProductID == "" {
			continue
		}
		out[it.ProductID] += it.Quantity
	}
	return out
}
