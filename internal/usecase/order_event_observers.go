package usecase

import (
	"context"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseStatusObserver moves the purchase status when a result event arrives.
type PurchaseStatusObserver struct {
	purchases interfaces.IPurchaseRepository
	logger    *zap.Logger
}

var _ interfaces.IOrderEventObserver = (*PurchaseStatusObserver)(nil)

func NewPurchaseStatusObserver(purchases interfaces.IPurchaseRepository, logger *zap.Logger) *PurchaseStatusObserver {
	return &PurchaseStatusObserver{purchases: purchases, logger: logger.Named("order.status")}
}

func (o *PurchaseStatusObserver) Name() string { return "purchase-status" }

func (o *PurchaseStatusObserver) Observe(ctx context.Context, e entities.OrderEvent) error {
	switch e.Type {
	case entities.EventCaptured, entities.EventRefunded, entities.EventVoided:
	default:
		return nil
	}

	p, err := o.purchases.GetByID(ctx, e.PurchaseID)
	if err != nil {
		return err
	}
	if p.ID == "" {
		return ErrPurchaseNotFound
	}

	next, ok := entities.NextTxnStatus(p.TxnStatus, e.Type)
	if !ok {
		o.logger.Info("status unchanged", zap.String("purchase_id", p.ID), zap.String("status", string(p.TxnStatus)), zap.String("event", string(e.Type)))
		return nil
	}
	changed, err := o.purchases.UpdateStatus(ctx, p.ID, p.TxnStatus, next)
	if err != nil {
		return err
	}
	if !changed {
		o.logger.Warn("status changed concurrently", zap.String("purchase_id", p.ID), zap.String("expected", string(p.TxnStatus)))
		return nil
	}
	o.logger.Info("status updated", zap.String("purchase_id", p.ID), zap.String("from", string(p.TxnStatus)), zap.String("to", string(next)))
	return nil
}

// SalesStatsObserver keeps product sold counters in step with charged purchases.
// Counters are given back only once refunds cover everything captured. It must
// run after PurchaseStatusObserver.
type SalesStatsObserver struct {
	purchases interfaces.IPurchaseRepository
	events    interfaces.IOrderEventRepository
	stats     interfaces.IProductStatsRepository
	logger    *zap.Logger
}

var _ interfaces.IOrderEventObserver = (*SalesStatsObserver)(nil)

func NewSalesStatsObserver(purchases interfaces.IPurchaseRepository, events interfaces.IOrderEventRepository, stats interfaces.IProductStatsRepository, logger *zap.Logger) *SalesStatsObserver {
	return &SalesStatsObserver{purchases: purchases, events: events, stats: stats, logger: logger.Named("order.salestats")}
}

func (o *SalesStatsObserver) Name() string { return "sales-stats" }

func (o *SalesStatsObserver) Observe(ctx context.Context, e entities.OrderEvent) error {
	var (
		key   string
		delta int
		want  entities.TxnStatus
	)
	switch e.Type {
	case entities.EventCaptured:
		key, delta, want = e.PurchaseID+"#sold", 1, entities.TxnStatusCharged
	case entities.EventRefunded:
		key, delta, want = e.PurchaseID+"#unsold", -1, entities.TxnStatusRefunded
	default:
		// voids only cancel authorizations, which were never counted
		return nil
	}

	p, err := o.purchases.GetByID(ctx, e.PurchaseID)
	if err != nil {
		return err
	}
	if p.ID == "" || p.TxnStatus != want {
		return nil
	}
	if e.Type == entities.EventRefunded {
		full, err := o.fullyRefunded(ctx, p.ID)
		if err != nil || !full {
			return err
		}
	}

	applied, err := o.stats.ApplySold(ctx, key, p.Quantities(), delta)
	if err != nil {
		return err
	}
	if applied {
		o.logger.Info("sold counters updated", zap.String("purchase_id", p.ID), zap.Int("delta", delta))
	}
	return nil
}

func (o *SalesStatsObserver) fullyRefunded(ctx context.Context, purchaseID string) (bool, error) {
	events, err := o.events.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return false, err
	}
	captured, refunded := decimal.Zero, decimal.Zero
	for _, e := range events {
		switch e.Type {
		case entities.EventCaptured:
			captured = captured.Add(e.Amount)
		case entities.EventRefunded:
			refunded = refunded.Add(e.Amount)
		}
	}
	if refunded.LessThan(captured) {
		o.logger.Info("partial refund keeps sold counters", zap.String("purchase_id", purchaseID),
			zap.String("captured", captured.String()), zap.String("refunded", refunded.String()))
		return false, nil
	}
	return true, nil
}
