package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"

	"go.uber.org/zap"
)

// ValidationRule names a check that gates processing. Overrides receive it.
type ValidationRule string

const (
	RuleCartNotEmpty    ValidationRule = "cart"
	RuleStock           ValidationRule = "stock"
	RuleCustomer        ValidationRule = "customer"
	RuleShippingAddress ValidationRule = "shipping-address"
	RuleShippingCosts   ValidationRule = "shipping-costs"
	RuleCheckoutForm    ValidationRule = "checkout-form"
	RulePayment         ValidationRule = "payment"
)

type ValidationReason struct {
	Rule    ValidationRule `json:"rule"`
	Message string         `json:"message"`
}

// RuleOverride may flip the outcome of a validation rule.
type RuleOverride func(rule ValidationRule, order *entities.OrderContext, valid bool) bool

var phoneJunk = regexp.MustCompile(`[^\d()\-+. ext]`)

func (u *OrderUseCase) rule(rule ValidationRule, order *entities.OrderContext, valid bool) bool {
	if u.override == nil {
		return valid
	}
	return u.override(rule, order, valid)
}

func (u *OrderUseCase) IsValid(order *entities.OrderContext) (bool, []ValidationReason) {
	var reasons []ValidationReason
	fail := func(r ValidationRule, msg string) {
		reasons = append(reasons, ValidationReason{Rule: r, Message: msg})
	}

	if !u.rule(RuleCartNotEmpty, order, !order.Cart.Empty()) {
		fail(RuleCartNotEmpty, "no items in cart")
	}

	var short []string
	for _, it := range order.Cart.Items {
		if !it.InStock() {
			short = append(short, it.Name)
		}
	}
	if !u.rule(RuleStock, order, len(short) == 0) {
		fail(RuleStock, "not enough stock for "+strings.Join(short, ", "))
	}

	c := order.Customer
	customerOK := strings.TrimSpace(c.FirstName) != "" && strings.TrimSpace(c.LastName) != "" && strings.TrimSpace(c.Email) != ""
	if !u.rule(RuleCustomer, order, customerOK) {
		fail(RuleCustomer, "customer information is incomplete")
	}

	if order.Cart.Shipped() {
		s := order.Shipping
		addressOK := strings.TrimSpace(s.Address) != "" && strings.TrimSpace(s.Country) != "" && strings.TrimSpace(s.Postcode) != ""
		if !u.rule(RuleShippingAddress, order, addressOK) {
			fail(RuleShippingAddress, "shipping address is missing")
		}
		if !u.rule(RuleShippingCosts, order, order.Cart.Totals.ShippingKnown) {
			fail(RuleShippingCosts, "shipping costs could not be calculated")
		}
	}

	order.Validated = len(reasons) == 0
	return order.Validated, reasons
}

// validForm checks the submitted checkout form against the updated order.
func (u *OrderUseCase) validForm(ctx context.Context, order *entities.OrderContext, form entities.CheckoutForm) []ValidationReason {
	var reasons []ValidationReason
	fail := func(msg string) {
		reasons = append(reasons, ValidationReason{Rule: RuleCheckoutForm, Message: msg})
	}

	c := order.Customer
	if strings.TrimSpace(c.FirstName) == "" {
		fail("You must provide your first name.")
	}
	if strings.TrimSpace(c.LastName) == "" {
		fail("You must provide your last name.")
	}
	if err := u.validate.Var(c.Email, "required,email"); err != nil {
		fail("You must provide a valid e-mail address.")
	}
	if form.ClickwrapShown && !form.Clickwrap {
		fail("You must agree to the terms of sale.")
	}

	newAccount := c.ID == "" && u.settings.AccountSystem != entities.AccountSystemNone && u.settings.AccountSystem != ""
	if newAccount && c.Email != "" {
		existing, err := u.customers.GetByEmail(ctx, c.Email)
		if err != nil {
			u.logger.Warn("customer lookup failed", zap.String("email", c.Email), zap.Error(err))
		} else if existing.ID != "" {
			fail("The email address you entered is already in use. Log in to continue.")
		}
	}
	if newAccount && u.settings.AccountSystem == entities.AccountSystemWordPress {
		if strings.TrimSpace(form.LoginName) == "" {
			fail("You must enter a login name for your account.")
		}
		if form.Password == "" {
			fail("You must enter a password for your account.")
		}
	}
	if form.Password != "" || form.ConfirmPassword != "" {
		if form.Password != form.ConfirmPassword {
			fail("The passwords you entered do not match.")
		}
	}

	b := order.Billing
	if len(strings.TrimSpace(b.Address.Address)) < 4 {
		fail("You must enter a valid street address for your billing information.")
	}
	if strings.TrimSpace(b.Postcode) == "" {
		fail("You must enter a valid postal code for your billing information.")
	}
	if strings.TrimSpace(b.Country) == "" {
		fail("You did not select a country for your billing information.")
	}

	if form.Billing.HasCard() && !order.Cart.OrderIsFree() {
		reasons = append(reasons, u.validCard(form.Billing, b)...)
	}
	return reasons
}

func (u *OrderUseCase) validCard(form entities.BillingForm, b entities.BillingAddress) []ValidationReason {
	var reasons []ValidationReason
	fail := func(msg string) {
		reasons = append(reasons, ValidationReason{Rule: RulePayment, Message: msg})
	}

	if b.Card == "" {
		fail("You did not provide a credit card number.")
	}
	card, known := entities.PayCardByName(form.CardType)
	if strings.TrimSpace(form.CardType) == "" {
		fail("You did not select a credit card type.")
	} else if b.Card != "" && (!known || !card.Validate(b.Card)) {
		fail("The credit card number you provided is invalid.")
	}

	switch {
	case strings.TrimSpace(form.CardExpiresMM) == "":
		fail("You did not enter the month the credit card expires.")
	case strings.TrimSpace(form.CardExpiresYY) == "":
		fail("You did not enter the year the credit card expires.")
	case b.CardExpires.IsZero():
		fail("The credit card expiration date you provided is invalid.")
	default:
		now := u.now()
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		if b.CardExpires.Before(month) {
			fail("The credit card expiration date you provided has already expired.")
		}
	}

	if len(strings.TrimSpace(b.CardHolder)) < 2 {
		fail("You did not enter the name on the credit card you provided.")
	}
	if (!known || card.CSC) && len(b.CVV) < 3 {
		fail("The security ID of the credit card you provided is invalid.")
	}
	return reasons
}

// cardExpiry turns MM and YY (or YYYY) into the first day of that month.
func cardExpiry(mm, yy string) time.Time {
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || m < 1 || m > 12 {
		return time.Time{}
	}
	y, err := strconv.Atoi(strings.TrimSpace(yy))
	if err != nil || y < 0 {
		return time.Time{}
	}
	if y < 100 {
		y += 2000
	}
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}

func sanitizePhone(s string) string {
	return strings.TrimSpace(phoneJunk.ReplaceAllString(s, ""))
}
