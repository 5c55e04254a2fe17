package logger

import (
	"context"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	lg   *zap.Logger
	once sync.Once
)

// RequestIDKey stores the request correlation id on a context.
type RequestIDKey struct{}

// New builds the process-wide zap logger. Production gets JSON output,
// everything else a colored console encoder. Repeat calls return the same
// instance.
func New(env string) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		lg, err = buildConfig(env).Build()
	})
	return lg, err
}

func buildConfig(env string) zap.Config {
	if env == "production" {
		return zap.NewProductionConfig()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// WithContext returns the singleton logger annotated with the context's
// request id, when one is present.
func WithContext(ctx context.Context) *zap.Logger {
	if lg == nil {
		fallback, _ := zap.NewDevelopment()
		return fallback
	}
	if ctx == nil {
		return lg
	}
	if id, ok := ctx.Value(RequestIDKey{}).(string); ok && id != "" {
		return lg.With(zap.String("request_id", id))
	}
	return lg
}

// MaskIP redacts the host-identifying portion of an address before logging.
// IPv4 keeps the first two octets, IPv6 the first two groups. Anything that
// does not parse is fully redacted.
func MaskIP(ip string) string {
	if ip == "" {
		return ""
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "***"
	}

	if v4 := parsed.To4(); v4 != nil {
		parts := strings.Split(v4.String(), ".")
		return parts[0] + "." + parts[1] + ".*.*"
	}

	groups := strings.Split(parsed.String(), ":")
	if len(groups) < 2 {
		return "***"
	}
	return groups[0] + ":" + groups[1] + "::*"
}

// MaskString redacts the middle of a sensitive value, keeping two characters
// of head and tail. Short values are fully redacted.
func MaskString(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + "***" + s[len(s)-2:]
}
