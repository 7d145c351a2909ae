package usecase

import (
	"context"
	"fmt"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseSummary is a purchase with its ledger view.
type PurchaseSummary struct {
	Purchase entities.Purchase     `json:"purchase"`
	Balance  decimal.Decimal       `json:"balance"`
	Events   []entities.OrderEvent `json:"events"`
}

// ITransactionUseCase runs merchant payment commands against existing purchases.
type ITransactionUseCase interface {
	GetPurchase(ctx context.Context, purchaseID string) (PurchaseSummary, error)
	Capture(ctx context.Context, purchaseID string, amount decimal.Decimal, user string) (entities.OrderEvent, error)
	Refund(ctx context.Context, purchaseID string, amount decimal.Decimal, user, reason string) (entities.OrderEvent, error)
	Void(ctx context.Context, purchaseID string, user, reason string) (entities.OrderEvent, error)
}

type TransactionUseCase struct {
	ledger    IOrderEventLedger
	registry  IGatewayRegistry
	purchases interfaces.IPurchaseRepository
	logger    *zap.Logger
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(ledger IOrderEventLedger, registry IGatewayRegistry, purchases interfaces.IPurchaseRepository, logger *zap.Logger) *TransactionUseCase {
	return &TransactionUseCase{ledger: ledger, registry: registry, purchases: purchases, logger: logger.Named("order.transactions")}
}

func (u *TransactionUseCase) GetPurchase(ctx context.Context, purchaseID string) (PurchaseSummary, error) {
	p, err := u.load(ctx, purchaseID)
	if err != nil {
		return PurchaseSummary{}, err
	}
	events, err := u.ledger.EventsFor(ctx, p.ID)
	if err != nil {
		return PurchaseSummary{}, err
	}
	return PurchaseSummary{Purchase: p, Balance: entities.Balance(events), Events: events}, nil
}

func (u *TransactionUseCase) Capture(ctx context.Context, purchaseID string, amount decimal.Decimal, user string) (entities.OrderEvent, error) {
	p, adapter, err := u.prepare(ctx, purchaseID, entities.TxnStatusAuthed)
	if err != nil {
		return entities.OrderEvent{}, err
	}
	if amount, err = u.amountFor(p, amount); err != nil {
		return entities.OrderEvent{}, err
	}

	if _, err := u.ledger.Append(ctx, nil, p.ID, entities.EventCapture, map[string]any{
		"txnid": p.TxnID, "gateway": p.Gateway, "amount": amount, "user": user,
	}); err != nil {
		return entities.OrderEvent{}, err
	}

	resp, err := adapter.Capture(ctx, p.TxnID, amount)
	if err != nil {
		return u.failed(ctx, p, entities.EventCaptureFail, amount, err)
	}
	return u.ledger.Append(ctx, nil, p.ID, entities.EventCaptured, map[string]any{
		"txnid": p.TxnID, "amount": amount, "fees": resp.Fees, "gateway": p.Gateway,
	})
}

func (u *TransactionUseCase) Refund(ctx context.Context, purchaseID string, amount decimal.Decimal, user, reason string) (entities.OrderEvent, error) {
	p, adapter, err := u.prepare(ctx, purchaseID, entities.TxnStatusCharged, entities.TxnStatusRefunded)
	if err != nil {
		return entities.OrderEvent{}, err
	}
	if !adapter.SupportsRefund() {
		return entities.OrderEvent{}, ErrRefundUnsupported
	}
	if amount, err = u.refundAmount(ctx, p, amount); err != nil {
		return entities.OrderEvent{}, err
	}

	if _, err := u.ledger.Append(ctx, nil, p.ID, entities.EventRefund, map[string]any{
		"txnid": p.TxnID, "gateway": p.Gateway, "amount": amount, "user": user, "reason": reason,
	}); err != nil {
		return entities.OrderEvent{}, err
	}

	resp, err := adapter.Refund(ctx, p.TxnID, amount)
	if err != nil {
		return u.failed(ctx, p, entities.EventRefundFail, amount, err)
	}
	txnID := resp.TxnID
	if txnID == "" {
		txnID = p.TxnID
	}
	return u.ledger.Append(ctx, nil, p.ID, entities.EventRefunded, map[string]any{
		"txnid": txnID, "amount": amount, "gateway": p.Gateway,
	})
}

func (u *TransactionUseCase) Void(ctx context.Context, purchaseID string, user, reason string) (entities.OrderEvent, error) {
	p, adapter, err := u.prepare(ctx, purchaseID, entities.TxnStatusAuthed)
	if err != nil {
		return entities.OrderEvent{}, err
	}

	if _, err := u.ledger.Append(ctx, nil, p.ID, entities.EventVoid, map[string]any{
		"txnid": p.TxnID, "gateway": p.Gateway, "user": user, "reason": reason,
	}); err != nil {
		return entities.OrderEvent{}, err
	}

	resp, err := adapter.Void(ctx, p.TxnID)
	if err != nil {
		return u.failed(ctx, p, entities.EventVoidFail, decimal.Zero, err)
	}
	txnID := resp.TxnID
	if txnID == "" {
		txnID = p.TxnID
	}
	return u.ledger.Append(ctx, nil, p.ID, entities.EventVoided, map[string]any{
		"txnorigin": p.TxnID, "txnid": txnID, "gateway": p.Gateway,
	})
}

func (u *TransactionUseCase) load(ctx context.Context, purchaseID string) (entities.Purchase, error) {
	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return entities.Purchase{}, ErrInvalidPurchaseID
	}
	p, err := u.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return entities.Purchase{}, err
	}
	if p.ID == "" {
		return entities.Purchase{}, ErrPurchaseNotFound
	}
	return p, nil
}

func (u *TransactionUseCase) prepare(ctx context.Context, purchaseID string, allowed ...entities.TxnStatus) (entities.Purchase, interfaces.IPaymentGateway, error) {
	p, err := u.load(ctx, purchaseID)
	if err != nil {
		return entities.Purchase{}, nil, err
	}
	ok := false
	for _, s := range allowed {
		if p.TxnStatus == s {
			ok = true
			break
		}
	}
	if !ok {
		return entities.Purchase{}, nil, fmt.Errorf("%w: purchase is %s", ErrInvalidTransition, p.TxnStatus)
	}
	adapter, found := u.registry.Adapter(p.Gateway)
	if !found {
		u.logger.Warn("gateway for purchase not installed", zap.String("purchase_id", p.ID), zap.String("gateway", p.Gateway))
		return entities.Purchase{}, nil, ErrGatewayUnavailable
	}
	return p, adapter, nil
}

// amountFor defaults a zero amount to the purchase total.
func (u *TransactionUseCase) amountFor(p entities.Purchase, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return p.Total, nil
	}
	if amount.IsNegative() || amount.GreaterThan(p.Total) {
		return decimal.Zero, fmt.Errorf("%w: %s for purchase total %s", ErrInvalidAmount, amount, p.Total)
	}
	return amount, nil
}

// refundAmount bounds a refund by what was captured and not yet refunded. A
// zero amount refunds the whole remainder.
func (u *TransactionUseCase) refundAmount(ctx context.Context, p entities.Purchase, amount decimal.Decimal) (decimal.Decimal, error) {
	events, err := u.ledger.EventsFor(ctx, p.ID)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := decimal.Zero
	for _, e := range events {
		switch e.Type {
		case entities.EventCaptured:
			remaining = remaining.Add(e.Amount)
		case entities.EventRefunded:
			remaining = remaining.Sub(e.Amount)
		}
	}
	if !remaining.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: nothing left to refund on purchase %s", ErrInvalidAmount, p.ID)
	}
	if amount.IsZero() {
		return remaining, nil
	}
	if amount.IsNegative() || amount.GreaterThan(remaining) {
		return decimal.Zero, fmt.Errorf("%w: %s exceeds refundable %s", ErrInvalidAmount, amount, remaining)
	}
	return amount, nil
}

func (u *TransactionUseCase) failed(ctx context.Context, p entities.Purchase, t entities.EventType, amount decimal.Decimal, cause error) (entities.OrderEvent, error) {
	code, message := gatewayErrorDetails(cause)
	u.logger.Warn("gateway command failed", zap.String("purchase_id", p.ID), zap.String("type", string(t)), zap.String("error_code", code), zap.Error(cause))

	payload := map[string]any{"error": code, "message": message, "gateway": p.Gateway}
	if t != entities.EventVoidFail {
		payload["amount"] = amount
	}
	if _, err := u.ledger.Append(ctx, nil, p.ID, t, payload); err != nil {
		u.logger.Error("failure event not recorded", zap.String("purchase_id", p.ID), zap.Error(err))
	}
	return entities.OrderEvent{}, gatewayFailure(cause)
}
