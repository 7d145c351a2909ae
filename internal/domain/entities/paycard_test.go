package entities

import "testing"

func TestPayCard_Validate(t *testing.T) {
	visa, _ := PayCardBySymbol("visa")
	mc, _ := PayCardBySymbol("mc")
	amex, _ := PayCardBySymbol("amex")

	valid := []struct {
		card PayCard
		pan  string
	}{
		{visa, "4111111111111111"},
		{visa, "4111 1111 1111 1111"},
		{visa, "4012-8888-8888-1881"},
		{mc, "5555555555554444"},
		{amex, "378282246310005"},
	}
	for _, tc := range valid {
		if !tc.card.Validate(tc.pan) {
			t.Fatalf("expected %s to accept %s", tc.card.Name, tc.pan)
		}
	}

	t.Run("single digit altered", func(t *testing.T) {
		if visa.Validate("4111111111111112") {
			t.Fatalf("expected altered number to fail checksum")
		}
		if mc.Validate("5555555555554445") {
			t.Fatalf("expected altered number to fail checksum")
		}
	})

	t.Run("wrong brand pattern", func(t *testing.T) {
		if mc.Validate("4111111111111111") {
			t.Fatalf("expected mastercard to reject a visa number")
		}
	})

	t.Run("no pattern only checks luhn", func(t *testing.T) {
		generic := PayCard{Name: "Generic"}
		if !generic.Match("123") {
			t.Fatalf("expected match without pattern")
		}
		if !generic.Validate("79927398713") {
			t.Fatalf("expected luhn-valid number to pass")
		}
	})
}

func TestLuhn(t *testing.T) {
	if Luhn("") {
		t.Fatalf("expected empty number to fail")
	}
	if Luhn("4111a11111111111") {
		t.Fatalf("expected non digits to fail")
	}
	// every single-digit substitution of a valid number must fail
	base := "4111111111111111"
	for i := 0; i < len(base); i++ {
		for d := byte('0'); d <= '9'; d++ {
			if d == base[i] {
				continue
			}
			altered := base[:i] + string(d) + base[i+1:]
			if Luhn(altered) {
				t.Fatalf("expected %s to fail", altered)
			}
		}
	}
}

func TestIdentifyPayCard(t *testing.T) {
	c, ok := IdentifyPayCard("3782 822463 10005")
	if !ok || c.Symbol != "amex" {
		t.Fatalf("expected amex, got %+v ok=%v", c, ok)
	}
	if _, ok := IdentifyPayCard("abc"); ok {
		t.Fatalf("expected no card for non digits")
	}
	if TruncatePAN("4111-1111-1111-1234") != "1234" {
		t.Fatalf("unexpected truncation")
	}
	if _, ok := PayCardByName("MasterCard"); !ok {
		t.Fatalf("expected lookup by name")
	}
}
