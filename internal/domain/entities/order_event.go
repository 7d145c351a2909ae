package entities

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidEventField = errors.New("invalid event field")

// EventType is the closed set of order event variants.
type EventType string

const (
	EventAuth          EventType = "auth"
	EventSale          EventType = "sale"
	EventAuthed        EventType = "authed"
	EventRebill        EventType = "rebill"
	EventCapture       EventType = "capture"
	EventCaptured      EventType = "captured"
	EventRecaptured    EventType = "recaptured"
	EventRefund        EventType = "refund"
	EventRefunded      EventType = "refunded"
	EventVoid          EventType = "void"
	EventVoided        EventType = "voided"
	EventAuthFail      EventType = "auth-fail"
	EventCaptureFail   EventType = "capture-fail"
	EventRecaptureFail EventType = "recapture-fail"
	EventRefundFail    EventType = "refund-fail"
	EventVoidFail      EventType = "void-fail"
	EventDecrypt       EventType = "decrypt"
	EventShipped       EventType = "shipped"
	EventDownload      EventType = "download"
)

// Polarity tells whether an event changes what the customer owes.
type Polarity string

const (
	PolarityNeutral Polarity = "neutral"
	PolarityDebit   Polarity = "debit"
	PolarityCredit  Polarity = "credit"
)

type eventSchema struct {
	polarity Polarity
	required []string
	// orphan events may be appended before a purchase exists.
	orphan bool
}

// schema is the single place event variants are described. Unknown types report ok=false.
func (t EventType) schema() (eventSchema, bool) {
	switch t {
	case EventAuth, EventSale:
		return eventSchema{polarity: PolarityNeutral, required: []string{"gateway", "amount"}, orphan: true}, true
	case EventAuthed:
		return eventSchema{polarity: PolarityDebit, required: []string{"txnid", "amount", "gateway", "paymethod", "paytype", "payid"}, orphan: true}, true
	case EventRebill:
		return eventSchema{polarity: PolarityDebit, required: []string{"txnid", "gateway", "amount", "fees", "paymethod", "payid"}}, true
	case EventCapture:
		return eventSchema{polarity: PolarityNeutral, required: []string{"txnid", "gateway", "amount", "user"}}, true
	case EventCaptured:
		return eventSchema{polarity: PolarityCredit, required: []string{"txnid", "amount", "fees", "gateway"}}, true
	case EventRecaptured:
		return eventSchema{polarity: PolarityCredit, required: []string{"txnorigin", "txnid", "amount", "gateway", "balance", "nextdate", "status"}}, true
	case EventRefund:
		return eventSchema{polarity: PolarityNeutral, required: []string{"txnid", "gateway", "amount", "user", "reason"}}, true
	case EventRefunded:
		return eventSchema{polarity: PolarityDebit, required: []string{"txnid", "amount", "gateway"}}, true
	case EventVoid:
		return eventSchema{polarity: PolarityNeutral, required: []string{"txnid", "gateway", "user", "reason"}}, true
	case EventVoided:
		return eventSchema{polarity: PolarityCredit, required: []string{"txnorigin", "txnid", "gateway"}}, true
	case EventAuthFail:
		return eventSchema{polarity: PolarityNeutral, required: []string{"amount", "error", "message", "gateway", "paymethod", "payid"}, orphan: true}, true
	case EventCaptureFail, EventRefundFail:
		return eventSchema{polarity: PolarityNeutral, required: []string{"amount", "error", "message", "gateway"}}, true
	case EventRecaptureFail:
		return eventSchema{polarity: PolarityNeutral, required: []string{"amount", "error", "message", "gateway", "retrydate"}}, true
	case EventVoidFail:
		return eventSchema{polarity: PolarityNeutral, required: []string{"error", "message", "gateway"}}, true
	case EventDecrypt:
		return eventSchema{polarity: PolarityNeutral, required: []string{"user"}}, true
	case EventShipped:
		return eventSchema{polarity: PolarityNeutral, required: []string{"tracking", "carrier"}}, true
	case EventDownload:
		return eventSchema{polarity: PolarityNeutral, required: []string{"purchased", "download", "ip", "customer"}}, true
	}
	return eventSchema{}, false
}

var allEventTypes = []EventType{
	EventAuth, EventSale, EventAuthed, EventRebill, EventCapture, EventCaptured, EventRecaptured,
	EventRefund, EventRefunded, EventVoid, EventVoided, EventAuthFail, EventCaptureFail,
	EventRecaptureFail, EventRefundFail, EventVoidFail, EventDecrypt, EventShipped, EventDownload,
}

func EventTypes() []EventType {
	out := make([]EventType, len(allEventTypes))
	copy(out, allEventTypes)
	return out
}

func ParseEventType(s string) (EventType, bool) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := t.schema()
	return t, ok
}

func (t EventType) Valid() bool {
	_, ok := t.schema()
	return ok
}

func (t EventType) Polarity() Polarity {
	s, _ := t.schema()
	if s.polarity == "" {
		return PolarityNeutral
	}
	return s.polarity
}

func (t EventType) RequiredFields() []string {
	s, _ := t.schema()
	out := make([]string, len(s.required))
	copy(out, s.required)
	return out
}

// AllowsOrphan reports whether the event may be recorded without a parent purchase.
func (t EventType) AllowsOrphan() bool {
	s, _ := t.schema()
	return s.orphan
}

// Transactional events move money and are deduplicated by transaction id.
func (t EventType) Transactional() bool {
	return t.Polarity() != PolarityNeutral
}

// OrderEvent is an immutable ledger entry. Build it with NewOrderEvent.
type OrderEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	PurchaseID string            `json:"purchase_id,omitempty"`
	Amount     decimal.Decimal   `json:"amount"`
	Gateway    string            `json:"gateway,omitempty"`
	TxnID      string            `json:"txnid,omitempty"`
	User       string            `json:"user,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	CreatedAt  time.Time         `json:"created"`
}

// NewOrderEvent validates payload against the type's required fields.
// purchaseID may be empty; whether that is allowed is decided by the ledger.
func NewOrderEvent(purchaseID string, t EventType, payload map[string]any) (OrderEvent, error) {
	s, ok := t.schema()
	if !ok {
		return OrderEvent{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidEventField, t)
	}

	var missing []string
	for _, k := range s.required {
		if v, ok := payload[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return OrderEvent{}, &MissingFieldError{Type: t, Missing: missing}
	}

	e := OrderEvent{
		Type:       t,
		PurchaseID: strings.TrimSpace(purchaseID),
		Amount:     decimal.Zero,
		Fields:     map[string]string{},
	}
	for k, v := range payload {
		if v == nil {
			continue
		}
		sv := stringify(v)
		switch k {
		case "amount":
			amt, err := parseAmount(v)
			if err != nil {
				return OrderEvent{}, fmt.Errorf("%w: amount %q", ErrInvalidEventField, sv)
			}
			e.Amount = amt
		case "gateway":
			e.Gateway = strings.TrimSpace(sv)
		case "txnid":
			e.TxnID = strings.TrimSpace(sv)
		case "user":
			e.User = strings.TrimSpace(sv)
		default:
			e.Fields[k] = sv
		}
	}
	return e, nil
}

func (e OrderEvent) Polarity() Polarity {
	return e.Type.Polarity()
}

// Signed is the event's contribution to the running balance: credits add, debits subtract.
func (e OrderEvent) Signed() decimal.Decimal {
	switch e.Polarity() {
	case PolarityCredit:
		return e.Amount
	case PolarityDebit:
		return e.Amount.Neg()
	}
	return decimal.Zero
}

func (e OrderEvent) Field(key string) string {
	return e.Fields[key]
}

func (e OrderEvent) Fees() decimal.Decimal {
	f, err := decimal.NewFromString(strings.TrimSpace(e.Fields["fees"]))
	if err != nil {
		return decimal.Zero
	}
	return f
}

// Flag reads a boolean payload field such as capture.
func (e OrderEvent) Flag(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(e.Fields[key]))
	return b
}

// WithFields returns a copy with the given fields replaced.
func (e OrderEvent) WithFields(fields map[string]string) OrderEvent {
	cp := make(map[string]string, len(e.Fields)+len(fields))
	for k, v := range e.Fields {
		cp[k] = v
	}
	for k, v := range fields {
		cp[k] = v
	}
	e.Fields = cp
	return e
}

// SortEvents orders events by creation time, oldest first. Ties keep id order.
func SortEvents(events []OrderEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}

// Balance sums credits minus debits.
func Balance(events []OrderEvent) decimal.Decimal {
	total := decimal.Zero
	for _, e := range events {
		total = total.Add(e.Signed())
	}
	return total
}

func parseAmount(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}
	return decimal.NewFromString(stringify(v))
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case decimal.Decimal:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
