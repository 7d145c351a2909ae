package entities

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// GatewayDescriptor is the static description of an installed payment gateway.
type GatewayDescriptor struct {
	Module   string            `json:"module"`
	Name     string            `json:"name"`
	Cards    []string          `json:"cards"`
	Refunds  bool              `json:"refunds"`
	Secure   bool              `json:"secure"`
	Labels   []string          `json:"labels"`
	Settings map[string]string `json:"settings,omitempty"`
}

// PayOption is a payment method offered at checkout. Each gateway label becomes one option.
type PayOption struct {
	Slug      string   `json:"slug"`
	Label     string   `json:"label"`
	Processor string   `json:"processor"`
	Cards     []string `json:"cards"`
}

// PayOptions returns the options for the descriptor labels, falling back to the gateway name.
func (d GatewayDescriptor) PayOptions() []PayOption {
	labels := d.Labels
	if len(labels) == 0 {
		labels = []string{d.Name}
	}
	out := make([]PayOption, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, PayOption{Slug: Slugify(l), Label: l, Processor: d.Module, Cards: d.Cards})
	}
	return out
}

// DefaultPayMethod is the slug of the first label.
func (d GatewayDescriptor) DefaultPayMethod() string {
	opts := d.PayOptions()
	if len(opts) == 0 {
		return ""
	}
	return opts[0].Slug
}

// AcceptedPayCards filters the descriptor card symbols against the catalogue.
func (d GatewayDescriptor) AcceptedPayCards() []PayCard {
	out := make([]PayCard, 0, len(d.Cards))
	for _, s := range d.Cards {
		if c, ok := PayCardBySymbol(s); ok {
			out = append(out, c)
		}
	}
	return out
}

// OrderSnapshot is the read-only view of an order handed to a gateway adapter.
type OrderSnapshot struct {
	SessionID string
	Customer  Customer
	Billing   BillingAddress
	Shipping  Address
	Items     []CartItem
	Totals    Totals
	PayMethod string
	Capture   bool
	ClientIP  string
	// Data carries checkout fields a processor may need, such as a card token.
	Data      map[string]string
}

// GatewayResponse is what an adapter reports after a successful call.
type GatewayResponse struct {
	TxnID    string
	Amount   decimal.Decimal
	Fees     decimal.Decimal
	Captured bool
	PayType  string
	PayID    string
	Raw      map[string]any
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
