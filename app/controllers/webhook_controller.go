package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sparkcreatives/donations-api/internal/pkg/metrics/counter"
	"github.com/sparkcreatives/donations-api/internal/pkg/webhook"
)

const webhookContextTimeout = 15 * time.Second

// WebhookController ingests Square payment webhooks. The pipeline runs rate
// limiting before any cryptographic work, then signature and freshness checks,
// then dedup/lock/dispatch against the shared store.
type WebhookController struct {
	cfg      webhook.Config
	limiter  *webhook.RateLimiter
	idem     *webhook.Idempotency
	counters *counter.Counters
}

func NewWebhookController(store webhook.Store, cfg webhook.Config, counters *counter.Counters) *WebhookController {
	return &WebhookController{
		cfg:      cfg,
		limiter:  webhook.NewRateLimiter(store, cfg.Provider, cfg.RateLimitPerMinute),
		idem:     webhook.NewIdempotency(store, cfg.Provider, cfg.IdempotencyTTL, cfg.LockTTL),
		counters: counters,
	}
}

func (wc *WebhookController) HandleSquareWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	sourceIP := c.IP()
	if sourceIP == "" {
		sourceIP = "unknown"
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookContextTimeout)
	defer cancel()

	if !wc.limiter.Allow(ctx, sourceIP) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too Many Requests"})
	}

	signature := c.Get("X-Square-Hmacsha256-Signature")
	if !webhook.VerifySignature(rawBody, signature, wc.cfg.SignatureKey, wc.cfg.NotificationURL) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	if !webhook.CheckTimestamp(c.Get("X-Request-Timestamp"), wc.cfg.TimestampTolerance, time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or stale timestamp"})
	}

	event, err := webhook.ParseEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed JSON body"})
	}

	if _, hit := wc.idem.Check(ctx, event.EventID); hit {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "duplicate",
			"event_id": event.EventID,
			"cached":   true,
		})
	}

	if !wc.idem.AcquireLock(ctx, event.EventID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Processing in progress"})
	}

	// Dispatch results are normalized and recorded but not yet applied to
	// donation records; reconciliation against the processor export covers
	// that gap for now.
	result, dispatchErr := webhook.Dispatch(event)
	if dispatchErr != nil {
		result = webhook.Result{
			"status":   "error",
			"event_id": event.EventID,
			"error":    dispatchErr.Error(),
		}
		wc.idem.StoreResult(ctx, event.EventID, result)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Event handler failed"})
	}

	result["event_id"] = event.EventID
	result["processed_at"] = time.Now().UTC().Format(time.RFC3339)
	wc.idem.StoreResult(ctx, event.EventID, result)
	wc.counters.Add(ctx, counter.WebhooksProcessed)

	return c.Status(fiber.StatusOK).JSON(result)
}
