package main

import (
	"context"
	"fmt"
	"net/http"

	"order_ledger/internal/adapter/http/handlers"
	"order_ledger/internal/adapter/http/routes"
	"order_ledger/internal/adapter/persistence/repository"
	"order_ledger/internal/adapter/persistence/session"
	"order_ledger/internal/infrastructure/config"
	"order_ledger/internal/infrastructure/database"
	"order_ledger/internal/infrastructure/lock"
	"order_ledger/internal/infrastructure/messaging"
	"order_ledger/internal/infrastructure/metrics"
	"order_ledger/internal/infrastructure/payments"
	"order_ledger/internal/usecase"
	"order_ledger/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type application struct {
	Routes  routes.Dependencies
	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	gin.SetMode(gin.ReleaseMode)
	app := &application{}

	ddb := database.ConnectDynamoDB(log)
	m := metrics.New(prometheus.DefaultRegisterer)

	rdb, err := database.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		if cfg.LockBackend == "redis" {
			return nil, err
		}
		log.Warn("redis unavailable, order sessions stay in memory", zap.Error(err))
	} else {
		app.closers = append(app.closers, rdb.Close)
	}

	backend, err := lockBackend(ctx, cfg, ddb, rdb, app)
	if err != nil {
		return nil, err
	}
	locks := lock.NewManager(backend, log, m)
	log.Info("transaction locks ready", zap.String("backend", backend.Name()))

	purchases := repository.NewPurchaseDynamoRepository(ddb)
	events := repository.NewOrderEventDynamoRepository(ddb)
	customers := repository.NewCustomerDynamoRepository(ddb)
	catalog := repository.NewCatalogDynamoRepository(ddb)

	registry := usecase.NewGatewayRegistry(cfg.Settings.ActiveGateways, log, gateways(cfg, log)...)

	ledger := usecase.NewOrderEventLedger(events, purchases, locks, cfg.Settings, log,
		usecase.NewPurchaseStatusObserver(purchases, log),
		usecase.NewSalesStatsObserver(purchases, events, catalog, log),
		metrics.NewObserver(m),
	)
	orders := usecase.NewOrderUseCase(usecase.OrderUseCaseDeps{
		Ledger:     ledger,
		Registry:   registry,
		FreeOrder:  payments.NewFreeOrderGateway(),
		Purchases:  purchases,
		Customers:  customers,
		Inventory:  catalog,
		Promotions: catalog,
		Notifier:   notifier(cfg, log, app),
		Settings:   cfg.Settings,
		Logger:     log,
	})
	ledger.SetMaterializer(orders)
	transactions := usecase.NewTransactionUseCase(ledger, registry, purchases, log)

	var store interfaces.ISessionStore = session.NewMemoryStore()
	if rdb != nil {
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
	}
	sessions := handlers.NewSessions(store, int(cfg.SessionTTL.Seconds()), registry.RequiresSecureTransport())

	app.Routes = routes.Dependencies{
		Orders:    handlers.NewOrderHandler(orders, sessions, log),
		Events:    handlers.NewEventHandler(ledger, sessions, log),
		Purchases: handlers.NewPurchaseHandler(transactions, log),
		Gateways:  handlers.NewGatewayHandler(registry),
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, purchase commands will reject every token")
	}
	return app, nil
}

func lockBackend(ctx context.Context, cfg *config.Config, ddb database.DynamoAPI, rdb *redis.Client, app *application) (lock.Backend, error) {
	switch cfg.LockBackend {
	case "redis":
		return lock.NewRedisBackend(rdb), nil
	case "postgres":
		db, err := database.NewPostgresDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		return lock.NewPostgresBackend(db), nil
	case "memory":
		return lock.NewMemoryBackend(), nil
	case "dynamodb":
		return lock.NewDynamoBackend(ddb), nil
	}
	return nil, fmt.Errorf("unknown lock backend %q", cfg.LockBackend)
}

// gateways builds every processor that has credentials. Activation is left to
// the registry.
func gateways(cfg *config.Config, log *zap.Logger) []interfaces.IPaymentGateway {
	var out []interfaces.IPaymentGateway

	if cfg.HTTPGatewayURL != "" {
		tr := payments.NewTransport("http", &http.Client{}, cfg.GatewayTimeout, cfg.GatewayUserAgent, log)
		out = append(out, payments.NewHTTPGateway(payments.HTTPGatewayConfig{
			BaseURL:   cfg.HTTPGatewayURL,
			APIKey:    cfg.HTTPGatewayKey,
			Precision: cfg.Settings.Currency.Precision,
		}, tr, log))
	}

	if stripeGateway, err := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.CurrencyCode, cfg.Settings.Currency.Precision, log); err != nil {
		log.Info("stripe gateway not configured", zap.Error(err))
	} else {
		out = append(out, stripeGateway)
	}

	if mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoToken, log); err != nil {
		log.Info("mercado pago gateway not configured", zap.Error(err))
	} else {
		out = append(out, mpGateway)
	}
	return out
}

func notifier(cfg *config.Config, log *zap.Logger, app *application) interfaces.INotifier {
	if cfg.AMQPURL == "" {
		return messaging.NewLogNotifier(log)
	}
	conn, err := messaging.Dial(cfg.AMQPURL, cfg.AMQPQueue, log)
	if err != nil {
		log.Warn("rabbitmq unavailable, notifications are only logged", zap.Error(err))
		return messaging.NewLogNotifier(log)
	}
	app.closers = append(app.closers, conn.Close)
	return messaging.NewAMQPNotifier(conn.Channel, cfg.AMQPQueue, cfg.Settings.Currency, log)
}
