package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IOrderEventLedger records order events and derives balances from them.
type IOrderEventLedger interface {
	Append(ctx context.Context, order *entities.OrderContext, purchaseID string, eventType entities.EventType, payload map[string]any) (entities.OrderEvent, error)
	EventsFor(ctx context.Context, purchaseID string) ([]entities.OrderEvent, error)
	RunningBalance(ctx context.Context, purchaseID string) (decimal.Decimal, error)
}

// IPurchaseMaterializer creates the Purchase for the first authed event of a
// transaction. Materialize runs while the ledger holds the transaction lock;
// Fulfill runs after the lock is released.
type IPurchaseMaterializer interface {
	Materialize(ctx context.Context, order *entities.OrderContext, authed entities.OrderEvent) (p entities.Purchase, created bool, err error)
	Fulfill(ctx context.Context, order *entities.OrderContext, p entities.Purchase)
}

type OrderEventLedger struct {
	events       interfaces.IOrderEventRepository
	purchases    interfaces.IPurchaseRepository
	locks        interfaces.ILockManager
	materializer IPurchaseMaterializer
	observers    []interfaces.IOrderEventObserver
	settings     entities.Settings
	logger       *zap.Logger
	now          func() time.Time
}

var _ IOrderEventLedger = (*OrderEventLedger)(nil)

func NewOrderEventLedger(
	events interfaces.IOrderEventRepository,
	purchases interfaces.IPurchaseRepository,
	locks interfaces.ILockManager,
	settings entities.Settings,
	logger *zap.Logger,
	observers ...interfaces.IOrderEventObserver,
) *OrderEventLedger {
	return &OrderEventLedger{
		events:    events,
		purchases: purchases,
		locks:     locks,
		observers: observers,
		settings:  settings,
		logger:    logger.Named("order.ledger"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetMaterializer wires the order state machine in. The two depend on each
// other so this cannot happen in the constructor.
func (l *OrderEventLedger) SetMaterializer(m IPurchaseMaterializer) {
	l.materializer = m
}

func (l *OrderEventLedger) Append(ctx context.Context, order *entities.OrderContext, purchaseID string, eventType entities.EventType, payload map[string]any) (entities.OrderEvent, error) {
	if !eventType.Valid() {
		return entities.OrderEvent{}, fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}

	e, err := entities.NewOrderEvent(purchaseID, eventType, payload)
	if err != nil {
		l.logger.Warn("event rejected", zap.String("type", string(eventType)), zap.Error(err))
		if eventType == entities.EventAuthed {
			// a malformed authorization is an integration bug, not user input
			return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrIntegrity, err)
		}
		return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	e = l.filter(e)

	if e.PurchaseID == "" && !e.Type.AllowsOrphan() {
		return entities.OrderEvent{}, fmt.Errorf("%w: %s", ErrParentRequired, e.Type)
	}
	if e.PurchaseID != "" {
		p, err := l.purchases.GetByID(ctx, e.PurchaseID)
		if err != nil {
			return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		if p.ID == "" {
			return entities.OrderEvent{}, ErrPurchaseNotFound
		}
	}

	var stored entities.OrderEvent
	switch {
	case e.Type == entities.EventAuthed:
		stored, err = l.appendAuthed(ctx, order, e)
	case e.Type == entities.EventVoided && !hasKey(payload, "amount"):
		if e, err = l.withOutstandingAmount(ctx, e); err == nil {
			stored, err = l.persist(ctx, e)
		}
	default:
		stored, err = l.persist(ctx, e)
	}
	if err != nil {
		return entities.OrderEvent{}, err
	}

	if stored.Type == entities.EventAuthed && stored.Flag("capture") {
		l.captureAfterAuth(ctx, order, stored)
	}
	return stored, nil
}

// appendAuthed materializes the purchase for a new transaction id and stores
// the authorization under the transaction lock. Repeats resolve to the
// purchase that already exists.
func (l *OrderEventLedger) appendAuthed(ctx context.Context, order *entities.OrderContext, e entities.OrderEvent) (entities.OrderEvent, error) {
	if e.TxnID == "" {
		l.logger.Error("authorization without transaction id", zap.String("gateway", e.Gateway))
		return entities.OrderEvent{}, fmt.Errorf("%w: authorization has no transaction id", ErrIntegrity)
	}

	if e.PurchaseID == "" {
		existing, err := l.purchases.GetByTxnID(ctx, e.TxnID)
		if err != nil {
			return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		e.PurchaseID = existing.ID
	}
	if e.PurchaseID != "" {
		stored, err := l.persist(ctx, e)
		return stored, err
	}

	if l.materializer == nil || order == nil {
		l.logger.Error("authorization cannot be materialized", zap.String("txnid", e.TxnID), zap.Bool("has_order", order != nil))
		return entities.OrderEvent{}, fmt.Errorf("%w: no order to materialize for transaction %s", ErrIntegrity, e.TxnID)
	}

	var (
		stored  entities.OrderEvent
		created entities.Purchase
		fresh   bool
	)
	err := withTransactionLock(ctx, l.locks, e.TxnID, l.settings.LockTimeout, l.logger, func(ctx context.Context) error {
		existing, err := l.purchases.GetByTxnID(ctx, e.TxnID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		if existing.ID == "" {
			p, isNew, err := l.materializer.Materialize(ctx, order, e)
			if err != nil {
				return err
			}
			existing, created, fresh = p, p, isNew
		}
		e.PurchaseID = existing.ID
		stored, err = l.persist(ctx, e)
		return err
	})
	if err != nil {
		return entities.OrderEvent{}, err
	}

	if fresh {
		l.materializer.Fulfill(ctx, order, created)
	}
	return stored, nil
}

// persist stores e and runs the observers. Duplicate debit or credit events
// return the stored original and run nothing.
func (l *OrderEventLedger) persist(ctx context.Context, e entities.OrderEvent) (entities.OrderEvent, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = l.now()

	stored, err := l.events.Create(ctx, e)
	if errors.Is(err, entities.ErrDuplicateTransaction) {
		dup, ferr := l.events.FindByTxn(ctx, e.PurchaseID, e.Type, e.TxnID)
		if ferr != nil {
			return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrPersistence, ferr)
		}
		if dup.ID != "" {
			l.logger.Info("duplicate event ignored",
				zap.String("type", string(e.Type)), zap.String("purchase_id", e.PurchaseID), zap.String("txnid", e.TxnID))
			return dup, nil
		}
	}
	if err != nil {
		l.logger.Error("event persist failed", zap.String("type", string(e.Type)), zap.String("purchase_id", e.PurchaseID), zap.Error(err))
		return entities.OrderEvent{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	l.logger.Info("event recorded",
		zap.String("id", stored.ID), zap.String("type", string(stored.Type)),
		zap.String("purchase_id", stored.PurchaseID), zap.String("txnid", stored.TxnID),
		zap.String("amount", stored.Amount.String()))

	l.dispatch(ctx, stored)
	return stored, nil
}

func (l *OrderEventLedger) dispatch(ctx context.Context, e entities.OrderEvent) {
	for _, o := range l.observers {
		if err := o.Observe(ctx, e); err != nil {
			l.logger.Error("event observer failed",
				zap.String("observer", o.Name()), zap.String("type", string(e.Type)),
				zap.String("event_id", e.ID), zap.Error(err))
		}
	}
}

// captureAfterAuth records the capture of an auth+capture (sale) response.
func (l *OrderEventLedger) captureAfterAuth(ctx context.Context, order *entities.OrderContext, authed entities.OrderEvent) {
	_, err := l.Append(ctx, order, authed.PurchaseID, entities.EventCaptured, map[string]any{
		"txnid":   authed.TxnID,
		"amount":  authed.Amount,
		"fees":    authed.Fees(),
		"gateway": authed.Gateway,
	})
	if err != nil {
		l.logger.Error("capture after authorization failed", zap.String("purchase_id", authed.PurchaseID), zap.String("txnid", authed.TxnID), zap.Error(err))
	}
}

// withOutstandingAmount makes a void without amount cancel what is still owed.
func (l *OrderEventLedger) withOutstandingAmount(ctx context.Context, e entities.OrderEvent) (entities.OrderEvent, error) {
	balance, err := l.RunningBalance(ctx, e.PurchaseID)
	if err != nil {
		return e, err
	}
	if balance.IsNegative() {
		e.Amount = balance.Neg()
	}
	return e, nil
}

func (l *OrderEventLedger) filter(e entities.OrderEvent) entities.OrderEvent {
	switch e.Type {
	case entities.EventAuthed:
		payid := e.Field("payid")
		if _, ok := entities.IdentifyPayCard(payid); ok && entities.Luhn(entities.DigitsOnly(payid)) {
			e = e.WithFields(map[string]string{"payid": entities.TruncatePAN(payid)})
		}
	case entities.EventRefund, entities.EventVoid:
		code := e.Field("reason")
		e = e.WithFields(map[string]string{"reason": l.settings.CancelReason(code), "reason_code": code})
	}
	return e
}

func (l *OrderEventLedger) EventsFor(ctx context.Context, purchaseID string) ([]entities.OrderEvent, error) {
	purchaseID = strings.TrimSpace(purchaseID)
	if purchaseID == "" {
		return nil, ErrInvalidPurchaseID
	}
	events, err := l.events.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	entities.SortEvents(events)
	return events, nil
}

// RunningBalance is recomputed from the log on every call.
func (l *OrderEventLedger) RunningBalance(ctx context.Context, purchaseID string) (decimal.Decimal, error) {
	events, err := l.EventsFor(ctx, purchaseID)
	if err != nil {
		return decimal.Zero, err
	}
	return entities.Balance(events), nil
}

func hasKey(m map[string]any, key string) bool {
	v, ok := m[key]
	return ok && v != nil
}
