package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	MessageOrderReceipt   = "order.receipt"
	MessageAccountCreated = "account.created"
)

// Message is the body published for the mailer.
type Message struct {
	Type       string            `json:"type"`
	To         string            `json:"to"`
	PurchaseID string            `json:"purchase_id,omitempty"`
	Total      string            `json:"total,omitempty"`
	Customer   string            `json:"customer,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	SentAt     time.Time         `json:"sent_at"`
}

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes notifications to a durable queue through the default exchange.
type AMQPNotifier struct {
	ch       publisher
	queue    string
	currency entities.CurrencyFormat
	logger   *zap.Logger
}

var _ interfaces.INotifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(ch publisher, queue string, currency entities.CurrencyFormat, logger *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, queue: queue, currency: currency, logger: logger.Named("order.notifier")}
}

func (n *AMQPNotifier) OrderReceipt(ctx context.Context, p entities.Purchase, to string) error {
	return n.publish(ctx, Message{
		Type:       MessageOrderReceipt,
		To:         to,
		PurchaseID: p.ID,
		Total:      n.currency.Format(p.Total),
		Customer:   strings.TrimSpace(p.FirstName + " " + p.LastName),
		Data:       map[string]string{"txnid": p.TxnID, "gateway": p.Gateway, "status": string(p.TxnStatus)},
	})
}

func (n *AMQPNotifier) AccountCreated(ctx context.Context, c entities.Customer, password string) error {
	return n.publish(ctx, Message{
		Type:     MessageAccountCreated,
		To:       c.Email,
		Customer: c.Name(),
		Data:     map[string]string{"password": password},
	})
}

func (n *AMQPNotifier) publish(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.SentAt = time.Now().UTC()
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Type, err)
	}
	err = n.ch.Publish("", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         m.Type,
		Timestamp:    m.SentAt,
		Body:         body,
	})
	if err != nil {
		n.logger.Warn("publish failed", zap.String("type", m.Type), zap.Error(err))
		return fmt.Errorf("publish %s: %w", m.Type, err)
	}
	n.logger.Debug("notification queued", zap.String("type", m.Type), zap.String("purchase_id", m.PurchaseID))
	return nil
}

// LogNotifier only logs. It stands in when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("order.notifier")}
}

func (n *LogNotifier) OrderReceipt(_ context.Context, p entities.Purchase, to string) error {
	n.logger.Info("order receipt", zap.String("purchase_id", p.ID), zap.String("to", to))
	return nil
}

func (n *LogNotifier) AccountCreated(_ context.Context, c entities.Customer, _ string) error {
	n.logger.Info("account created", zap.String("email", c.Email))
	return nil
}
