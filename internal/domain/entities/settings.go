package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountSystem string

const (
	AccountSystemNone      AccountSystem = "none"
	AccountSystemShopp     AccountSystem = "shopp"
	AccountSystemWordPress AccountSystem = "wordpress"
)

const (
	OrderConfirmationAlways      = "always"
	OrderConfirmationConditional = "conditional"
)

// Settings is the merchant configuration read by the order processing core.
type Settings struct {
	ActiveGateways    []string
	CancelReasons     map[string]string
	OrderConfirmation string
	AccountSystem     AccountSystem
	TaxInclusive      bool
	ReceiptCopy       bool
	MerchantEmail     string
	Currency          CurrencyFormat
	LockTimeout       time.Duration
}

func (s Settings) ConfirmationRequired() bool {
	return s.OrderConfirmation == OrderConfirmationAlways
}

// CancelReason maps a reason code to its configured label; unknown codes pass through.
func (s Settings) CancelReason(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := s.CancelReasons[code]; ok && label != "" {
		return label
	}
	return code
}

// CurrencyFormat controls how amounts are rendered for gateways and receipts.
type CurrencyFormat struct {
	Precision int
	Decimals  string
	Thousands string
}

func DefaultCurrencyFormat() CurrencyFormat {
	return CurrencyFormat{Precision: 2, Decimals: ".", Thousands: ","}
}

// Format renders amount with the configured precision and separators.
func (f CurrencyFormat) Format(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(int32(f.Precision))
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() && !amount.Round(int32(f.Precision)).IsZero() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.Thousands)
		}
		b.WriteRune(r)
	}
	if f.Precision > 0 {
		b.WriteString(f.Decimals)
		b.WriteString(frac)
	}
	return b.String()
}
