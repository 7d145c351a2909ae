package metrics

import (
	"context"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service collectors. Register it once per registry.
type Metrics struct {
	Events         *prometheus.CounterVec
	GatewayFails   *prometheus.CounterVec
	CapturedAmount *prometheus.CounterVec
	Purchases      prometheus.Counter
	LockAcquire    *prometheus.CounterVec
	LockWait       *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "order_ledger",
			Name:      "events_total",
			Help:      "Order events stored by the ledger, by type.",
		}, []string{"type"}),
		GatewayFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "order_ledger",
			Name:      "gateway_failures_total",
			Help:      "Failure events recorded per gateway and event type.",
		}, []string{"gateway", "type"}),
		CapturedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "order_ledger",
			Name:      "captured_amount_total",
			Help:      "Sum of captured amounts per gateway.",
		}, []string{"gateway"}),
		Purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "order_ledger",
			Name:      "purchases_total",
			Help:      "Purchases materialized from authorizations.",
		}),
		LockAcquire: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "order_ledger",
			Name:      "txn_lock_acquire_total",
			Help:      "Transaction lock acquisitions by backend and outcome.",
		}, []string{"backend", "outcome"}),
		LockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "order_ledger",
			Name:      "txn_lock_wait_seconds",
			Help:      "Time spent waiting for a transaction lock.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"backend"}),
	}
	if reg != nil {
		reg.MustRegister(m.Events, m.GatewayFails, m.CapturedAmount, m.Purchases, m.LockAcquire, m.LockWait)
	}
	return m
}

// ObserveLock records one Acquire call.
func (m *Metrics) ObserveLock(backend string, acquired bool, waited time.Duration) {
	if m == nil {
		return
	}
	outcome := "acquired"
	if !acquired {
		outcome = "timeout"
	}
	m.LockAcquire.WithLabelValues(backend, outcome).Inc()
	m.LockWait.WithLabelValues(backend).Observe(waited.Seconds())
}

// Observer feeds ledger events into the collectors.
type Observer struct {
	m *Metrics
}

var _ interfaces.IOrderEventObserver = (*Observer)(nil)

func NewObserver(m *Metrics) *Observer {
	return &Observer{m: m}
}

func (o *Observer) Name() string { return "metrics" }

func (o *Observer) Observe(_ context.Context, e entities.OrderEvent) error {
	o.m.Events.WithLabelValues(string(e.Type)).Inc()
	switch e.Type {
	case entities.EventAuthed:
		o.m.Purchases.Inc()
	case entities.EventCaptured:
		amount, _ := e.Amount.Float64()
		o.m.CapturedAmount.WithLabelValues(e.Gateway).Add(amount)
	case entities.EventAuthFail, entities.EventCaptureFail, entities.EventRecaptureFail, entities.EventRefundFail, entities.EventVoidFail:
		o.m.GatewayFails.WithLabelValues(e.Gateway, string(e.Type)).Inc()
	}
	return nil
}
