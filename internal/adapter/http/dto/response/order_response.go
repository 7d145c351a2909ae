package response

import (
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"
)

// OrderResponse is the session order as shown to the shopper. The card number
// is reduced to its last four digits.
type OrderResponse struct {
	SessionID  string           `json:"session_id"`
	State      string           `json:"state"`
	Customer   CustomerResponse `json:"customer"`
	Billing    BillingResponse  `json:"billing"`
	Shipping   entities.Address `json:"shipping"`
	Cart       entities.Cart    `json:"cart"`
	Gateway    string           `json:"gateway,omitempty"`
	PayMethod  string           `json:"paymethod,omitempty"`
	TxnStatus  string           `json:"txnstatus"`
	PurchaseID string           `json:"purchase_id,omitempty"`
	Confirm    bool             `json:"confirm"`
	Freebie    bool             `json:"freebie"`
	Created    time.Time        `json:"created"`
	Last       string           `json:"last_purchase_id,omitempty"`
}

type CustomerResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Marketing bool   `json:"marketing"`
}

type BillingResponse struct {
	entities.Address
	Card       string `json:"card,omitempty"`
	CardType   string `json:"cardtype,omitempty"`
	CardHolder string `json:"cardholder,omitempty"`
}

func FromOrder(o *entities.OrderContext) OrderResponse {
	return OrderResponse{
		SessionID: o.SessionID,
		State:     string(o.State),
		Customer: CustomerResponse{
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     o.Customer.Email,
			Phone:     o.Customer.Phone,
			Company:   o.Customer.Company,
			Marketing: o.Customer.Marketing,
		},
		Billing: BillingResponse{
			Address:    o.Billing.Address,
			Card:       entities.TruncatePAN(o.Billing.Card),
			CardType:   o.Billing.CardType,
			CardHolder: o.Billing.CardHolder,
		},
		Shipping:   o.Shipping,
		Cart:       o.Cart,
		Gateway:    o.Gateway,
		PayMethod:  o.PayMethod,
		TxnStatus:  string(o.TxnStatus),
		PurchaseID: o.PurchaseID,
		Confirm:    o.Confirm,
		Freebie:    o.Freebie,
		Created:    o.CreatedAt,
		Last:       o.LastPurchaseID,
	}
}

type CheckoutResponse struct {
	State      string                     `json:"state"`
	Redirect   string                     `json:"redirect"`
	PurchaseID string                     `json:"purchase_id,omitempty"`
	Reasons    []usecase.ValidationReason `json:"reasons,omitempty"`
	Order      OrderResponse              `json:"order"`
}

func FromCheckout(r usecase.CheckoutResult, o *entities.OrderContext) CheckoutResponse {
	return CheckoutResponse{
		State:      string(r.State),
		Redirect:   string(r.Redirect),
		PurchaseID: r.PurchaseID,
		Reasons:    r.Reasons,
		Order:      FromOrder(o),
	}
}
