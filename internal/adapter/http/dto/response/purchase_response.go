package response

import (
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"
)

type EventResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	PurchaseID string            `json:"purchase_id,omitempty"`
	Amount     string            `json:"amount"`
	Polarity   string            `json:"polarity"`
	Gateway    string            `json:"gateway,omitempty"`
	TxnID      string            `json:"txnid,omitempty"`
	User       string            `json:"user,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Created    time.Time         `json:"created"`
}

func FromEvent(e entities.OrderEvent) EventResponse {
	return EventResponse{
		ID:         e.ID,
		Type:       string(e.Type),
		PurchaseID: e.PurchaseID,
		Amount:     e.Amount.StringFixed(2),
		Polarity:   string(e.Polarity()),
		Gateway:    e.Gateway,
		TxnID:      e.TxnID,
		User:       e.User,
		Fields:     e.Fields,
		Created:    e.CreatedAt,
	}
}

func FromEvents(events []entities.OrderEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromEvent(e))
	}
	return out
}

type PurchaseResponse struct {
	ID        string                   `json:"id"`
	TxnID     string                   `json:"txnid"`
	TxnStatus string                   `json:"txnstatus"`
	Gateway   string                   `json:"gateway"`
	PayMethod string                   `json:"paymethod,omitempty"`
	Card      string                   `json:"card,omitempty"`
	CardType  string                   `json:"cardtype,omitempty"`
	FirstName string                   `json:"firstname"`
	LastName  string                   `json:"lastname"`
	Email     string                   `json:"email"`
	Items     []entities.PurchasedItem `json:"items"`
	Subtotal  string                   `json:"subtotal"`
	Discount  string                   `json:"discount"`
	Freight   string                   `json:"freight"`
	Tax       string                   `json:"tax"`
	Total     string                   `json:"total"`
	Fees      string                   `json:"fees"`
	Balance   string                   `json:"balance"`
	Created   time.Time                `json:"created"`
	Events    []EventResponse          `json:"events,omitempty"`
}

func FromPurchaseSummary(s usecase.PurchaseSummary) PurchaseResponse {
	p := s.Purchase
	return PurchaseResponse{
		ID:        p.ID,
		TxnID:     p.TxnID,
		TxnStatus: string(p.TxnStatus),
		Gateway:   p.Gateway,
		PayMethod: p.PayMethod,
		Card:      p.Card,
		CardType:  p.CardType,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Items:     p.Items,
		Subtotal:  p.Subtotal.StringFixed(2),
		Discount:  p.Discount.StringFixed(2),
		Freight:   p.Freight.StringFixed(2),
		Tax:       p.Tax.StringFixed(2),
		Total:     p.Total.StringFixed(2),
		Fees:      p.Fees.StringFixed(2),
		Balance:   s.Balance.StringFixed(2),
		Created:   p.CreatedAt,
		Events:    FromEvents(s.Events),
	}
}

type GatewaysResponse struct {
	Activated  []string             `json:"activated"`
	PayOptions []entities.PayOption `json:"pay_options"`
	PayCards   []entities.PayCard   `json:"pay_cards"`
	Secure     bool                 `json:"secure"`
}
