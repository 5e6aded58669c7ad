package webhook

import (
	"time"

	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

// Config carries the webhook pipeline settings for one payment provider.
type Config struct {
	Provider string

	// SignatureKey and NotificationURL feed signature verification. When
	// either is empty, verification passes vacuously; that is a deliberate
	// permissive default for environments without a registered webhook.
	SignatureKey    string
	NotificationURL string

	TimestampTolerance time.Duration
	RateLimitPerMinute int
	IdempotencyTTL     time.Duration
	LockTTL            time.Duration
}

// SquareConfigFromEnv reads the Square webhook settings.
func SquareConfigFromEnv() Config {
	return Config{
		Provider:           "square",
		SignatureKey:       env.GetEnv("SQUARE_WEBHOOK_SIGNATURE_KEY", ""),
		NotificationURL:    env.GetEnv("SQUARE_NOTIFICATION_URL", ""),
		TimestampTolerance: time.Duration(env.GetEnvInt("WEBHOOK_TIMESTAMP_TOLERANCE", 300)) * time.Second,
		RateLimitPerMinute: env.GetEnvInt("WEBHOOK_RATE_LIMIT_PER_MINUTE", 100),
		IdempotencyTTL:     time.Duration(env.GetEnvInt("IDEMPOTENCY_KEY_TTL", 86400)) * time.Second,
		LockTTL:            time.Duration(env.GetEnvInt("WEBHOOK_LOCK_TTL", 30)) * time.Second,
	}
}
