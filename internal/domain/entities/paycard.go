package entities

import (
	"regexp"
	"strings"
)

// PayCard describes a payment card brand accepted by gateways.
//
// Cards are immutable and defined once in the catalogue below. Validation is
// a brand pattern match plus the Luhn checksum.
type PayCard struct {
	Name    string
	Symbol  string
	Pattern *regexp.Regexp
	CSC     bool
	// Inputs lists extra checkout fields the brand needs (issue number, start date).
	Inputs map[string]string
}

var nonDigits = regexp.MustCompile(`\D`)

var payCards = []PayCard{
	{Name: "Visa", Symbol: "visa", Pattern: regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`), CSC: true},
	{Name: "MasterCard", Symbol: "mc", Pattern: regexp.MustCompile(`^5[1-5][0-9]{14}$`), CSC: true},
	{Name: "American Express", Symbol: "amex", Pattern: regexp.MustCompile(`^3[47][0-9]{13}$`), CSC: true},
	{Name: "Discover Card", Symbol: "disc", Pattern: regexp.MustCompile(`^6(?:011|5[0-9]{2})[0-9]{12}$`), CSC: true},
	{Name: "Diners Club", Symbol: "dc", Pattern: regexp.MustCompile(`^3(?:0[0-5]|[68][0-9])[0-9]{11}$`), CSC: true},
	{Name: "JCB", Symbol: "jcb", Pattern: regexp.MustCompile(`^(?:2131|1800|35[0-9]{3})[0-9]{11}$`), CSC: true},
	{Name: "Maestro", Symbol: "maes", Pattern: regexp.MustCompile(`^(?:5[06-8]|6[0-9])[0-9]{10,17}$`), CSC: true,
		Inputs: map[string]string{"start": "5", "issue": "3"}},
	{Name: "Solo", Symbol: "solo", Pattern: regexp.MustCompile(`^(?:6334|6767)[0-9]{12}(?:[0-9]{2,3})?$`), CSC: true,
		Inputs: map[string]string{"start": "5", "issue": "3"}},
	{Name: "Switch", Symbol: "swch", Pattern: regexp.MustCompile(`^(?:4903|4905|4911|4936|6333|6759)[0-9]{12}(?:[0-9]{2,3})?$`), CSC: true,
		Inputs: map[string]string{"start": "5", "issue": "3"}},
	{Name: "Laser", Symbol: "lasr", Pattern: regexp.MustCompile(`^(?:6304|670[69]|6771)[0-9]{12,15}$`)},
}

// PayCards returns the card catalogue in display order.
func PayCards() []PayCard {
	out := make([]PayCard, len(payCards))
	copy(out, payCards)
	return out
}

func PayCardBySymbol(symbol string) (PayCard, bool) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	for _, c := range payCards {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return PayCard{}, false
}

// PayCardByName matches either the brand name or its symbol, case-insensitively.
func PayCardByName(name string) (PayCard, bool) {
	name = strings.TrimSpace(name)
	for _, c := range payCards {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.Symbol, name) {
			return c, true
		}
	}
	return PayCard{}, false
}

// IdentifyPayCard returns the first catalogue card whose pattern matches pan.
func IdentifyPayCard(pan string) (PayCard, bool) {
	n := DigitsOnly(pan)
	if n == "" {
		return PayCard{}, false
	}
	for _, c := range payCards {
		if c.Pattern != nil && c.Pattern.MatchString(n) {
			return c, true
		}
	}
	return PayCard{}, false
}

func (c PayCard) Validate(pan string) bool {
	n := DigitsOnly(pan)
	return c.Match(n) && c.Checksum(n)
}

func (c PayCard) Match(number string) bool {
	if c.Pattern == nil {
		return true
	}
	return c.Pattern.MatchString(number)
}

// Checksum runs the Luhn algorithm over number.
func (c PayCard) Checksum(number string) bool {
	return Luhn(number)
}

func Luhn(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	for i := 0; i < len(number); i++ {
		ch := number[len(number)-1-i]
		if ch < '0' || ch > '9' {
			return false
		}
		d := int(ch - '0')
		if i&1 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// TruncatePAN keeps the last four digits of a card number.
func TruncatePAN(pan string) string {
	n := DigitsOnly(pan)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}
