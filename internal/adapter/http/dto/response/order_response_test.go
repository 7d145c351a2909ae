package response

import (
	"testing"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromOrder_MasksCard(t *testing.T) {
	o := entities.NewOrderContext("s1")
	o.Billing.Card = "4111111111111111"
	o.Billing.CVV = "123"
	o.Customer.Password = "hash"

	r := FromOrder(o)
	if r.Billing.Card != "1111" {
		t.Fatalf("expected last four digits, got %q", r.Billing.Card)
	}
	if r.SessionID != "s1" || r.State != string(entities.OrderStateEmpty) || r.TxnStatus != "PENDING" {
		t.Fatalf("unexpected response: %+v", r)
	}
}

func TestFromCheckout(t *testing.T) {
	o := entities.NewOrderContext("s1")
	res := usecase.CheckoutResult{
		State:    entities.OrderStateCheckout,
		Redirect: usecase.RedirectCheckout,
		Reasons:  []usecase.ValidationReason{{Rule: usecase.RuleCartNotEmpty, Message: "empty"}},
	}
	r := FromCheckout(res, o)
	if r.Redirect != "checkout" || len(r.Reasons) != 1 || r.Order.SessionID != "s1" {
		t.Fatalf("unexpected response: %+v", r)
	}
}

func TestFromPurchaseSummary(t *testing.T) {
	s := usecase.PurchaseSummary{
		Purchase: entities.Purchase{ID: "p1", TxnID: "txn-1", TxnStatus: entities.TxnStatusCharged, Total: decimal.RequireFromString("50")},
		Balance:  decimal.Zero,
		Events: []entities.OrderEvent{
			{ID: "e1", Type: entities.EventCaptured, Amount: decimal.RequireFromString("50")},
		},
	}
	r := FromPurchaseSummary(s)
	if r.Total != "50.00" || r.Balance != "0.00" || r.TxnStatus != "CHARGED" {
		t.Fatalf("unexpected response: %+v", r)
	}
	if len(r.Events) != 1 || r.Events[0].Polarity != "credit" || r.Events[0].Amount != "50.00" {
		t.Fatalf("unexpected events: %+v", r.Events)
	}
}
