package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"order_ledger/internal/domain/entities"

	"github.com/spf13/viper"
)

// Config is everything the service reads at startup. Settings is the part
// handed to the order core; the rest wires infrastructure.
type Config struct {
	Settings entities.Settings

	Port        string
	LockBackend string
	RedisAddr   string
	PostgresDSN string
	AMQPURL     string
	AMQPQueue   string
	JWTSecret   string
	SessionTTL  time.Duration

	GatewayTimeout   time.Duration
	GatewayUserAgent string
	HTTPGatewayURL   string
	HTTPGatewayKey   string
	CurrencyCode     string
	StripeSecretKey  string
	MercadoPagoToken string
}

var defaults = map[string]any{
	"port":               "8080",
	"active_gateways":    "",
	"cancel_reasons":     "",
	"order_confirmation": entities.OrderConfirmationConditional,
	"account_system":     string(entities.AccountSystemNone),
	"tax_inclusive":      false,
	"receipt_copy":       false,
	"merchant_email":     "",
	"currency_precision": 2,
	"currency_decimals":  ".",
	"currency_thousands": ",",
	"txn_lock_backend":   "dynamodb",
	"txn_lock_timeout":   "10s",
	"gateway_timeout":    "30s",
	"gateway_user_agent": "order-ledger/1.0",
	"http_gateway_url":   "",
	"http_gateway_key":   "",
	"currency_code":      "USD",
	"session_ttl":        "24h",
	"redis_addr":         "localhost:6379",
	"postgres_dsn":       "",
	"amqp_url":           "",
	"amqp_queue":         "order.notifications",
	"jwt_secret":         "",
	"stripe_secret_key":  "",
	"mercadopago_token":  "",
}

// Load reads configuration from the environment and, when CONFIG_PATH points
// at a file, from that file first.
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("mercadopago_token", "MERCADOPAGO_ACCESS_TOKEN")

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	account := entities.AccountSystem(strings.ToLower(strings.TrimSpace(v.GetString("account_system"))))
	switch account {
	case entities.AccountSystemNone, entities.AccountSystemShopp, entities.AccountSystemWordPress:
	case "":
		account = entities.AccountSystemNone
	default:
		return nil, fmt.Errorf("unknown account_system %q", account)
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("txn_lock_backend")))
	switch backend {
	case "dynamodb", "redis", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown txn_lock_backend %q", backend)
	}

	precision := v.GetInt("currency_precision")
	if precision < 0 {
		precision = 0
	}

	cfg := &Config{
		Settings: entities.Settings{
			ActiveGateways:    ParseList(v.GetString("active_gateways")),
			CancelReasons:     ParseCancelReasons(v.GetString("cancel_reasons")),
			OrderConfirmation: strings.ToLower(strings.TrimSpace(v.GetString("order_confirmation"))),
			AccountSystem:     account,
			TaxInclusive:      v.GetBool("tax_inclusive"),
			ReceiptCopy:       v.GetBool("receipt_copy"),
			MerchantEmail:     strings.TrimSpace(v.GetString("merchant_email")),
			Currency: entities.CurrencyFormat{
				Precision: precision,
				Decimals:  v.GetString("currency_decimals"),
				Thousands: v.GetString("currency_thousands"),
			},
			LockTimeout: v.GetDuration("txn_lock_timeout"),
		},
		Port:             v.GetString("port"),
		LockBackend:      backend,
		RedisAddr:        v.GetString("redis_addr"),
		PostgresDSN:      v.GetString("postgres_dsn"),
		AMQPURL:          v.GetString("amqp_url"),
		AMQPQueue:        v.GetString("amqp_queue"),
		JWTSecret:        v.GetString("jwt_secret"),
		SessionTTL:       v.GetDuration("session_ttl"),
		GatewayTimeout:   v.GetDuration("gateway_timeout"),
		GatewayUserAgent: v.GetString("gateway_user_agent"),
		HTTPGatewayURL:   strings.TrimSpace(v.GetString("http_gateway_url")),
		HTTPGatewayKey:   v.GetString("http_gateway_key"),
		CurrencyCode:     strings.ToUpper(strings.TrimSpace(v.GetString("currency_code"))),
		StripeSecretKey:  v.GetString("stripe_secret_key"),
		MercadoPagoToken: v.GetString("mercadopago_token"),
	}
	if cfg.Settings.LockTimeout <= 0 {
		return nil, fmt.Errorf("txn_lock_timeout must be positive")
	}
	if cfg.Settings.ReceiptCopy && cfg.Settings.MerchantEmail == "" {
		return nil, fmt.Errorf("receipt_copy needs merchant_email")
	}
	return cfg, nil
}

// ParseList splits a comma separated list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseCancelReasons reads "code:label,code:label". An entry without a label
// maps the code to itself.
func ParseCancelReasons(s string) map[string]string {
	out := map[string]string{}
	for _, entry := range ParseList(s) {
		code, label, found := strings.Cut(entry, ":")
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = code
		}
		out[code] = label
	}
	return out
}
