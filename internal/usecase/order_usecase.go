package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const generatedPasswordLength = 12

// Redirect tells the storefront which page follows a checkout step.
type Redirect string

const (
	RedirectCheckout Redirect = "checkout"
	RedirectConfirm  Redirect = "confirm"
	RedirectThanks   Redirect = "thanks"
)

// CheckoutResult is the outcome of a checkout step. Validation problems are
// reported through Reasons, never as errors.
type CheckoutResult struct {
	State      entities.OrderState `json:"state"`
	Redirect   Redirect            `json:"redirect"`
	PurchaseID string              `json:"purchase_id,omitempty"`
	Reasons    []ValidationReason  `json:"reasons,omitempty"`
}

// IOrderUseCase drives a session order from checkout to purchase.
type IOrderUseCase interface {
	Checkout(ctx context.Context, order *entities.OrderContext, form entities.CheckoutForm) (CheckoutResult, error)
	ShipMethod(ctx context.Context, order *entities.OrderContext, method string) (CheckoutResult, error)
	Confirmed(ctx context.Context, order *entities.OrderContext) (CheckoutResult, error)
	Process(ctx context.Context, order *entities.OrderContext) (CheckoutResult, error)
	IsValid(order *entities.OrderContext) (bool, []ValidationReason)
	Transaction(ctx context.Context, order *entities.OrderContext, txnID string, status entities.TxnStatus, fees decimal.Decimal) error
	Success(ctx context.Context, order *entities.OrderContext) CheckoutResult
}

type OrderUseCaseDeps struct {
	Ledger     IOrderEventLedger
	Registry   IGatewayRegistry
	FreeOrder  interfaces.IPaymentGateway
	Purchases  interfaces.IPurchaseRepository
	Customers  interfaces.ICustomerRepository
	Inventory  interfaces.IInventoryRepository
	Promotions interfaces.IPromotionRepository
	Notifier   interfaces.INotifier
	Settings   entities.Settings
	Logger     *zap.Logger
}

type OrderUseCaseOption func(*OrderUseCase)

// WithRuleOverride installs a hook that can flip any validation rule.
func WithRuleOverride(fn RuleOverride) OrderUseCaseOption {
	return func(u *OrderUseCase) { u.override = fn }
}

func WithClock(now func() time.Time) OrderUseCaseOption {
	return func(u *OrderUseCase) { u.now = now }
}

type OrderUseCase struct {
	ledger     IOrderEventLedger
	registry   IGatewayRegistry
	freeOrder  interfaces.IPaymentGateway
	purchases  interfaces.IPurchaseRepository
	customers  interfaces.ICustomerRepository
	inventory  interfaces.IInventoryRepository
	promotions interfaces.IPromotionRepository
	notifier   interfaces.INotifier
	settings   entities.Settings
	logger     *zap.Logger
	validate   *validator.Validate
	override   RuleOverride
	now        func() time.Time

	// accounts holds generated passwords between Materialize and Fulfill.
	accounts sync.Map
}

type createdAccount struct {
	customer entities.Customer
	password string
}

var (
	_ IOrderUseCase         = (*OrderUseCase)(nil)
	_ IPurchaseMaterializer = (*OrderUseCase)(nil)
)

func NewOrderUseCase(deps OrderUseCaseDeps, opts ...OrderUseCaseOption) *OrderUseCase {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &OrderUseCase{
		ledger:     deps.Ledger,
		registry:   deps.Registry,
		freeOrder:  deps.FreeOrder,
		purchases:  deps.Purchases,
		customers:  deps.Customers,
		inventory:  deps.Inventory,
		promotions: deps.Promotions,
		notifier:   deps.Notifier,
		settings:   deps.Settings,
		logger:     logger.Named("order.usecase"),
		validate:   validator.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *OrderUseCase) Checkout(ctx context.Context, order *entities.OrderContext, form entities.CheckoutForm) (CheckoutResult, error) {
	if order == nil {
		return CheckoutResult{}, fmt.Errorf("%w: no order in session", ErrInvalidTransition)
	}
	u.logger.Info("checkout start", zap.String("session_id", order.SessionID), zap.Int("items", len(order.Cart.Items)))
	order.State = entities.OrderStateValidating

	u.selectPayMethod(order, form.PayMethod)
	u.applyForm(order, form)

	estimated := order.Cart.Totals.Total
	wasFree := order.Freebie || order.Cart.OrderIsFree()
	order.Cart.Retotal()

	if form.UpdateShipping {
		order.State = entities.OrderStateCheckout
		return CheckoutResult{State: order.State, Redirect: RedirectCheckout}, nil
	}

	if reasons := u.validForm(ctx, order, form); len(reasons) > 0 {
		u.logger.Info("checkout form rejected", zap.String("session_id", order.SessionID), zap.Int("reasons", len(reasons)))
		return u.backToCheckout(order, reasons...), nil
	}

	if form.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("hash password: %w", err)
		}
		order.Customer.Password = string(hash)
	}

	order.Freebie = order.Cart.OrderIsFree()
	if order.Freebie {
		return u.freebie(ctx, order)
	}
	if wasFree && strings.TrimSpace(form.PayMethod) == "" {
		return u.backToCheckout(order, ValidationReason{Rule: RulePayment, Message: "payment information for this order is missing"}), nil
	}

	if !estimated.Equal(order.Cart.Totals.Total) || u.settings.ConfirmationRequired() || form.Confirm {
		order.Confirm = true
		order.State = entities.OrderStateAwaitingConfirmation
		return CheckoutResult{State: order.State, Redirect: RedirectConfirm}, nil
	}
	return u.Process(ctx, order)
}

func (u *OrderUseCase) selectPayMethod(order *entities.OrderContext, payMethod string) {
	if u.registry == nil {
		return
	}
	d, opt, err := u.registry.Select(order.Processor, payMethod)
	if err != nil {
		u.logger.Warn("no payment method available", zap.String("session_id", order.SessionID), zap.Error(err))
		return
	}
	order.Processor = d.Module
	order.Gateway = d.Name
	order.PayMethod = opt.Slug
}

func (u *OrderUseCase) applyForm(order *entities.OrderContext, form entities.CheckoutForm) {
	c := &order.Customer
	c.FirstName = strings.TrimSpace(form.FirstName)
	c.LastName = strings.TrimSpace(form.LastName)
	c.Email = strings.TrimSpace(form.Email)
	c.Phone = sanitizePhone(form.Phone)
	c.Company = strings.TrimSpace(form.Company)
	c.Marketing = form.Marketing
	if form.LoginName != "" {
		c.LoginName = strings.TrimSpace(form.LoginName)
	}
	if len(form.Info) > 0 {
		if c.Info == nil {
			c.Info = map[string]string{}
		}
		for k, v := range form.Info {
			c.Info[k] = v
		}
	}
	for k, v := range form.Data {
		if order.Data == nil {
			order.Data = map[string]string{}
		}
		order.Data[k] = v
	}
	if form.ClientIP != "" {
		order.ClientIP = form.ClientIP
	}

	b := &order.Billing
	b.Address = form.Billing.Address
	b.Card = entities.DigitsOnly(form.Billing.Card)
	b.CVV = entities.DigitsOnly(form.Billing.CVV)
	b.CardHolder = strings.TrimSpace(form.Billing.CardHolder)
	b.CardExpires = cardExpiry(form.Billing.CardExpiresMM, form.Billing.CardExpiresYY)
	b.CardType = strings.TrimSpace(form.Billing.CardType)
	if card, ok := entities.PayCardByName(b.CardType); ok {
		b.CardType = card.Name
	}

	order.SameShipAddress = form.SameShipAddress
	if order.Cart.Shipped() {
		if form.SameShipAddress {
			order.Shipping = form.Billing.Address
		} else {
			order.Shipping = form.Shipping
		}
	} else {
		order.Shipping = entities.Address{}
	}

	switch method := strings.TrimSpace(form.ShipMethod); {
	case method != "":
		order.Cart.ShipMethod = method
	case order.Cart.ShipMethod == "" && len(order.Cart.ShipOptions) > 0:
		order.Cart.ShipMethod = order.Cart.ShipOptions[0].Method
	}
}

// freebie completes an order with nothing to pay without a remote gateway.
func (u *OrderUseCase) freebie(ctx context.Context, order *entities.OrderContext) (CheckoutResult, error) {
	if u.freeOrder == nil {
		return u.backToCheckout(order), ErrGatewayUnavailable
	}
	d := u.freeOrder.Descriptor()
	order.Processor = d.Module
	order.Gateway = d.Name
	order.PayMethod = d.DefaultPayMethod()
	order.State = entities.OrderStateProcessing

	resp, err := u.freeOrder.Charge(ctx, order.Snapshot(true), decimal.Zero)
	if err != nil {
		return u.backToCheckout(order), gatewayFailure(err)
	}
	if err := u.Transaction(ctx, order, resp.TxnID, entities.TxnStatusCharged, decimal.Zero); err != nil {
		return u.afterAuthFailure(order, err)
	}
	return u.Success(ctx, order), nil
}

func (u *OrderUseCase) ShipMethod(ctx context.Context, order *entities.OrderContext, method string) (CheckoutResult, error) {
	method = strings.TrimSpace(method)
	if _, ok := order.Cart.ShipRate(method); !ok {
		return CheckoutResult{}, fmt.Errorf("%w: unknown shipping method %q", ErrValidation, method)
	}
	order.Cart.ShipMethod = method
	order.Cart.Retotal()
	u.logger.Info("shipping method changed", zap.String("session_id", order.SessionID), zap.String("method", method))
	return CheckoutResult{State: order.State, Redirect: RedirectCheckout}, nil
}

func (u *OrderUseCase) Confirmed(ctx context.Context, order *entities.OrderContext) (CheckoutResult, error) {
	if order == nil || order.State != entities.OrderStateAwaitingConfirmation {
		return CheckoutResult{}, ErrInvalidTransition
	}
	order.Confirmed = true
	return u.Process(ctx, order)
}

func (u *OrderUseCase) Process(ctx context.Context, order *entities.OrderContext) (CheckoutResult, error) {
	if ok, reasons := u.IsValid(order); !ok {
		u.logger.Info("order not valid for processing", zap.String("session_id", order.SessionID), zap.Int("reasons", len(reasons)))
		return u.backToCheckout(order, reasons...), nil
	}

	d, opt, err := u.registry.Select(order.Processor, order.PayMethod)
	if err != nil {
		u.logger.Warn("no gateway to process order", zap.String("session_id", order.SessionID), zap.Error(err))
		return u.backToCheckout(order, ValidationReason{Rule: RulePayment, Message: "no payment method is available"}), nil
	}
	adapter, ok := u.registry.Adapter(d.Module)
	if !ok {
		return u.backToCheckout(order), ErrGatewayUnavailable
	}
	order.Processor = d.Module
	order.Gateway = d.Name
	order.PayMethod = opt.Slug
	order.State = entities.OrderStateProcessing

	command, capture := entities.EventAuth, false
	if !order.Cart.Shipped() {
		command, capture = entities.EventSale, true
	}
	amount := order.Cart.Totals.Total

	if _, err := u.ledger.Append(ctx, order, "", command, map[string]any{"gateway": d.Module, "amount": amount}); err != nil {
		u.logger.Error("command event not recorded", zap.String("type", string(command)), zap.Error(err))
		return u.backToCheckout(order), err
	}

	order.State = entities.OrderStateAuthorizing
	u.logger.Info("charging order", zap.String("session_id", order.SessionID), zap.String("gateway", d.Module), zap.String("amount", amount.String()), zap.Bool("capture", capture))
	resp, err := adapter.Charge(ctx, order.Snapshot(capture), amount)
	if err != nil {
		return u.chargeFailed(ctx, order, d, opt, amount, err)
	}

	if strings.TrimSpace(resp.TxnID) == "" {
		u.logger.Error("gateway authorized without transaction id", zap.String("gateway", d.Module))
		order.State = entities.OrderStateFailed
		return CheckoutResult{State: order.State, Redirect: RedirectCheckout}, fmt.Errorf("%w: authorization has no transaction id", ErrIntegrity)
	}

	paid := resp.Amount
	if paid.IsZero() {
		paid = amount
	}
	payID := resp.PayID
	if payID == "" {
		payID = entities.TruncatePAN(order.Billing.Card)
	}
	payType := resp.PayType
	if payType == "" {
		payType = order.Billing.CardType
	}

	order.TxnID = resp.TxnID
	authed, err := u.ledger.Append(ctx, order, "", entities.EventAuthed, map[string]any{
		"txnid":     resp.TxnID,
		"amount":    paid,
		"gateway":   d.Module,
		"paymethod": opt.Slug,
		"paytype":   payType,
		"payid":     payID,
		"capture":   resp.Captured,
		"fees":      resp.Fees,
	})
	if err != nil {
		return u.afterAuthFailure(order, err)
	}
	order.PurchaseID = authed.PurchaseID
	if resp.Captured {
		order.TxnStatus = entities.TxnStatusCharged
	}
	return u.Success(ctx, order), nil
}

func (u *OrderUseCase) chargeFailed(ctx context.Context, order *entities.OrderContext, d entities.GatewayDescriptor, opt entities.PayOption, amount decimal.Decimal, cause error) (CheckoutResult, error) {
	code, message := gatewayErrorDetails(cause)
	u.logger.Warn("charge failed", zap.String("gateway", d.Module), zap.String("error_code", code), zap.Error(cause))

	_, err := u.ledger.Append(ctx, order, "", entities.EventAuthFail, map[string]any{
		"amount":    amount,
		"error":     code,
		"message":   message,
		"gateway":   d.Module,
		"paymethod": opt.Slug,
		"payid":     entities.TruncatePAN(order.Billing.Card),
	})
	if err != nil {
		u.logger.Error("auth-fail event not recorded", zap.Error(err))
	}
	return u.backToCheckout(order, ValidationReason{Rule: RulePayment, Message: message}), gatewayFailure(cause)
}

func (u *OrderUseCase) afterAuthFailure(order *entities.OrderContext, err error) (CheckoutResult, error) {
	if errors.Is(err, ErrLockTimeout) {
		u.logger.Warn("order busy, asking shopper to retry", zap.String("txnid", order.TxnID))
		return u.backToCheckout(order, ValidationReason{Rule: RulePayment, Message: "the order is being processed, please try again"}), err
	}
	u.logger.Error("order processing halted", zap.String("txnid", order.TxnID), zap.Error(err))
	order.State = entities.OrderStateFailed
	return CheckoutResult{State: order.State, Redirect: RedirectCheckout}, err
}

func (u *OrderUseCase) backToCheckout(order *entities.OrderContext, reasons ...ValidationReason) CheckoutResult {
	order.State = entities.OrderStateCheckout
	return CheckoutResult{State: order.State, Redirect: RedirectCheckout, Reasons: reasons}
}

// Success resets the session order and sends the shopper to the receipt.
func (u *OrderUseCase) Success(ctx context.Context, order *entities.OrderContext) CheckoutResult {
	purchaseID := order.PurchaseID
	u.logger.Info("order purchased", zap.String("session_id", order.SessionID), zap.String("purchase_id", purchaseID), zap.String("txnid", order.TxnID))
	order.Reset()
	return CheckoutResult{State: entities.OrderStatePurchased, Redirect: RedirectThanks, PurchaseID: purchaseID}
}

// Transaction records a gateway outcome reported outside the normal charge
// flow, such as an offsite return or a free order.
func (u *OrderUseCase) Transaction(ctx context.Context, order *entities.OrderContext, txnID string, status entities.TxnStatus, fees decimal.Decimal) error {
	txnID = strings.TrimSpace(txnID)
	if txnID == "" {
		return fmt.Errorf("%w: transaction id is empty", ErrIntegrity)
	}
	order.TxnID = txnID

	p, err := u.purchases.GetByTxnID(ctx, txnID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	gateway := order.Processor
	amount := order.Cart.Totals.Total

	if p.ID == "" {
		authed, err := u.ledger.Append(ctx, order, "", entities.EventAuthed, map[string]any{
			"txnid":     txnID,
			"amount":    amount,
			"gateway":   gateway,
			"paymethod": order.PayMethod,
			"paytype":   order.Billing.CardType,
			"payid":     entities.TruncatePAN(order.Billing.Card),
			"fees":      fees,
		})
		if err != nil {
			return err
		}
		p.ID = authed.PurchaseID
	} else {
		gateway = p.Gateway
		amount = p.Total
	}

	switch status {
	case entities.TxnStatusCharged:
		_, err = u.ledger.Append(ctx, order, p.ID, entities.EventCaptured, map[string]any{
			"txnid": txnID, "amount": amount, "fees": fees, "gateway": gateway,
		})
	case entities.TxnStatusVoided:
		_, err = u.ledger.Append(ctx, order, p.ID, entities.EventVoided, map[string]any{
			"txnorigin": txnID, "txnid": txnID, "gateway": gateway,
		})
	case entities.TxnStatusRefunded:
		_, err = u.ledger.Append(ctx, order, p.ID, entities.EventRefunded, map[string]any{
			"txnid": txnID, "amount": amount, "gateway": gateway,
		})
	}
	if err != nil {
		return err
	}

	order.PurchaseID = p.ID
	if status != entities.TxnStatusPending {
		order.TxnStatus = status
	}
	return nil
}

// Materialize writes the customer, addresses and purchase for a new
// authorization. The ledger calls it while holding the transaction lock.
func (u *OrderUseCase) Materialize(ctx context.Context, order *entities.OrderContext, authed entities.OrderEvent) (entities.Purchase, bool, error) {
	customer, generated, err := u.saveCustomer(ctx, order.Customer)
	if err != nil {
		return entities.Purchase{}, false, err
	}
	order.Customer = customer

	billing := order.Billing
	billing.CustomerID = customer.ID
	billing.Card = entities.TruncatePAN(billing.Card)
	billing.CVV = ""
	if card, ok := entities.PayCardByName(billing.CardType); ok {
		billing.CardType = card.Name
	}
	billing, err = u.customers.SaveAddress(ctx, "billing", billing)
	if err != nil {
		return entities.Purchase{}, false, fmt.Errorf("%w: billing address: %w", ErrPersistence, err)
	}

	var shippingID string
	if order.Cart.Shipped() && !order.Shipping.Empty() {
		shipping := order.Shipping
		shipping.CustomerID = customer.ID
		saved, err := u.customers.SaveAddress(ctx, "shipping", entities.BillingAddress{Address: shipping})
		if err != nil {
			return entities.Purchase{}, false, fmt.Errorf("%w: shipping address: %w", ErrPersistence, err)
		}
		shippingID = saved.ID
		order.Shipping.ID = saved.ID
	}

	p := u.newPurchase(order, authed, customer, billing, shippingID)
	created, err := u.purchases.Create(ctx, p)
	if errors.Is(err, entities.ErrDuplicateTransaction) {
		existing, gerr := u.purchases.GetByTxnID(ctx, p.TxnID)
		if gerr == nil && existing.ID != "" {
			u.logger.Info("purchase already materialized", zap.String("txnid", p.TxnID), zap.String("purchase_id", existing.ID))
			order.PurchaseID = existing.ID
			return existing, false, nil
		}
	}
	if err != nil {
		u.logger.Error("purchase not saved", zap.String("txnid", p.TxnID), zap.Error(err))
		return entities.Purchase{}, false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if len(order.Cart.Promos) > 0 && u.promotions != nil {
		ids := make([]string, 0, len(order.Cart.Promos))
		for _, pr := range order.Cart.Promos {
			ids = append(ids, pr.ID)
		}
		if err := u.promotions.MarkUsed(ctx, ids); err != nil {
			u.logger.Warn("promotion usage not recorded", zap.String("purchase_id", created.ID), zap.Error(err))
		}
	}
	if generated != "" {
		u.accounts.Store(created.ID, createdAccount{customer: customer, password: generated})
	}

	order.PurchaseID = created.ID
	order.TxnStatus = created.TxnStatus
	u.logger.Info("purchase materialized", zap.String("purchase_id", created.ID), zap.String("txnid", created.TxnID), zap.String("total", created.Total.String()))
	return created, true, nil
}

// saveCustomer returns the stored customer and, for a new shopp account
// without a chosen password, the generated plain password.
func (u *OrderUseCase) saveCustomer(ctx context.Context, c entities.Customer) (entities.Customer, string, error) {
	existing, err := u.customers.GetByEmail(ctx, c.Email)
	if err != nil {
		return entities.Customer{}, "", fmt.Errorf("%w: customer lookup: %w", ErrPersistence, err)
	}

	var generated string
	switch {
	case existing.ID != "":
		c.ID = existing.ID
		c.Password = existing.Password
		c.WPUser = existing.WPUser
	case u.settings.AccountSystem == entities.AccountSystemShopp:
		if c.Password == "" {
			generated, err = gonanoid.New(generatedPasswordLength)
			if err != nil {
				return entities.Customer{}, "", fmt.Errorf("generate password: %w", err)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
			if err != nil {
				return entities.Customer{}, "", fmt.Errorf("hash password: %w", err)
			}
			c.Password = string(hash)
		}
	case u.settings.AccountSystem == entities.AccountSystemWordPress:
		c.WPUser = c.LoginName
	default:
		c.Password = ""
	}

	saved, err := u.customers.Save(ctx, c)
	if err != nil {
		return entities.Customer{}, "", fmt.Errorf("%w: customer: %w", ErrPersistence, err)
	}
	return saved, generated, nil
}

func (u *OrderUseCase) newPurchase(order *entities.OrderContext, authed entities.OrderEvent, c entities.Customer, billing entities.BillingAddress, shippingID string) entities.Purchase {
	items := make([]entities.PurchasedItem, 0, len(order.Cart.Items))
	for _, it := range order.Cart.Items {
		pi := entities.PurchasedItem{
			ProductID: it.ProductID,
			PriceID:   it.PriceID,
			Name:      it.Name,
			Option:    it.Option,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total(),
			Download:  it.Download,
			Inventory: it.Inventory,
		}
		if it.Download != "" {
			pi.DKey = strings.ReplaceAll(uuid.NewString(), "-", "")
		}
		items = append(items, pi)
	}

	var promos map[string]string
	if len(order.Cart.Promos) > 0 {
		promos = make(map[string]string, len(order.Cart.Promos))
		for _, pr := range order.Cart.Promos {
			promos[pr.ID] = pr.Name
		}
	}

	t := order.Cart.Totals
	return entities.Purchase{
		ID:           uuid.NewString(),
		TxnID:        authed.TxnID,
		TxnStatus:    entities.TxnStatusAuthed,
		Gateway:      authed.Gateway,
		PayMethod:    authed.Field("paymethod"),
		PayType:      authed.Field("paytype"),
		PayID:        authed.Field("payid"),
		Card:         billing.Card,
		CardType:     billing.CardType,
		CustomerID:   c.ID,
		BillingID:    billing.ID,
		ShippingID:   shippingID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Billing:      billing,
		Shipping:     order.Shipping,
		ShipMethod:   order.Cart.ShipMethod,
		Items:        items,
		Promos:       promos,
		Subtotal:     t.Subtotal,
		Discount:     t.Discount,
		Freight:      t.Shipping,
		Tax:          t.Tax,
		Total:        t.Total,
		Fees:         authed.Fees(),
		TaxInclusive: u.settings.TaxInclusive,
		IP:           order.ClientIP,
		CreatedAt:    u.now(),
	}
}

// Fulfill runs the side effects of a new purchase once the lock is released.
// Failures are logged; the purchase stands.
func (u *OrderUseCase) Fulfill(ctx context.Context, order *entities.OrderContext, p entities.Purchase) {
	if u.inventory != nil {
		for _, it := range p.Items {
			if !it.Inventory {
				continue
			}
			if err := u.inventory.Decrement(ctx, it.PriceID, it.Quantity); err != nil {
				u.logger.Error("inventory not decremented", zap.String("purchase_id", p.ID), zap.String("price_id", it.PriceID), zap.Error(err))
			}
		}
	}

	acc, hasAccount := u.accounts.LoadAndDelete(p.ID)
	if u.notifier == nil {
		return
	}
	if err := u.notifier.OrderReceipt(ctx, p, p.Email); err != nil {
		u.logger.Error("receipt not sent", zap.String("purchase_id", p.ID), zap.Error(err))
	}
	if u.settings.ReceiptCopy && u.settings.MerchantEmail != "" {
		if err := u.notifier.OrderReceipt(ctx, p, u.settings.MerchantEmail); err != nil {
			u.logger.Error("merchant receipt not sent", zap.String("purchase_id", p.ID), zap.Error(err))
		}
	}
	if hasAccount {
		a := acc.(createdAccount)
		if err := u.notifier.AccountCreated(ctx, a.customer, a.password); err != nil {
			u.logger.Error("account notice not sent", zap.String("customer_id", a.customer.ID), zap.Error(err))
		}
	}
}

func gatewayErrorDetails(err error) (code, message string) {
	var ge *entities.GatewayError
	if errors.As(err, &ge) {
		message = ge.Message
		if message == "" {
			message = ge.Error()
		}
		return ge.ErrorCode(), message
	}
	return "unknown", err.Error()
}
