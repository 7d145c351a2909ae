package request

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheckoutRequest_ToForm(t *testing.T) {
	r := CheckoutRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Billing: BillingRequest{
			AddressRequest: AddressRequest{Address: " 1 Main St ", City: "London"},
			Card:           "4111 1111 1111 1111",
			CardExpiresMM:  "12",
			CardExpiresYY:  "30",
		},
		SameShipAddress: true,
		PayMethod:       "credit-card",
	}
	f := r.ToForm("203.0.113.7")
	if f.ClientIP != "203.0.113.7" || f.Billing.Address.Address != "1 Main St" || f.Billing.Card != "4111 1111 1111 1111" {
		t.Fatalf("unexpected form: %+v", f)
	}
	if !f.SameShipAddress || f.PayMethod != "credit-card" || !f.Billing.HasCard() {
		t.Fatalf("unexpected form flags: %+v", f)
	}
}

func TestCartRequest_ToCart(t *testing.T) {
	r := CartRequest{
		Items: []CartItemRequest{
			{ProductID: "shirt", PriceID: "shirt-m", Quantity: 2, UnitPrice: "20.00", Shipped: true},
		},
		Promos:      []PromotionRequest{{ID: "promo", Discount: "5"}},
		ShipOptions: []ShipOptionRequest{{Method: "ground", Rate: "10"}},
		ShipMethod:  "ground",
		TaxRate:     "0.1",
	}
	cart, err := r.ToCart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 40 - 5 = 35 taxable, tax 3.50, shipping 10.
	if !cart.Totals.Total.Equal(decimal.RequireFromString("48.50")) {
		t.Fatalf("expected 48.50, got %s", cart.Totals.Total)
	}

	r.Items[0].UnitPrice = "twenty"
	if _, err := r.ToCart(); err == nil {
		t.Fatalf("expected invalid price to fail")
	}
	r.Items[0].UnitPrice = "-1"
	if _, err := r.ToCart(); err == nil {
		t.Fatalf("expected negative price to fail")
	}
}

func TestParseAmount(t *testing.T) {
	if d, err := ParseAmount(" 12.50 "); err != nil || !d.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected result: %s %v", d, err)
	}
	for _, in := range []string{"", "0", "abc", "-3"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("expected %q to fail", in)
		}
	}
}

func TestEventRequest_Parent(t *testing.T) {
	id := " p1 "
	if got := (EventRequest{PurchaseID: &id}).Parent(); got != "p1" {
		t.Fatalf("expected p1, got %q", got)
	}
	if got := (EventRequest{}).Parent(); got != "" {
		t.Fatalf("expected empty parent, got %q", got)
	}
}
