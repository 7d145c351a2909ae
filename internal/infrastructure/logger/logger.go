package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. APP_ENV=dev switches to the console encoder.
func NewLogger(service string) *zap.Logger {
	if isDev() {
		return NewDevelopmentLogger(service)
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": service}
	if lvl := strings.TrimSpace(os.Getenv("LOG_LEVEL")); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}

func NewDevelopmentLogger(service string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.InitialFields = map[string]interface{}{"service": service}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}

func isDev() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case "dev", "development", "local":
		return true
	}
	return false
}
