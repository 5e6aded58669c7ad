package counter

import (
	"context"
	"log"
	"strconv"

	"github.com/sparkcreatives/donations-api/internal/pkg/cache"
)

const countersKey = "spark:counters"

const (
	ReceiptsGenerated   = "receipts_generated"
	StatementsGenerated = "statements_generated"
	EmailsSent          = "emails_sent"
	WebhooksProcessed   = "webhooks_processed"
	ReconciliationsRun  = "reconciliations_run"
	DataRoomURLRequests = "data_room_url_requests"
)

// Counters keeps operational tallies in a Redis hash so they survive restarts
// and aggregate across instances. Every write is best-effort.
type Counters struct {
	cache *cache.Client
}

func New(c *cache.Client) *Counters {
	return &Counters{cache: c}
}

// Add increments a named counter.
func (c *Counters) Add(ctx context.Context, name string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.HIncrBy(ctx, countersKey, name, 1); err != nil {
		log.Printf("counter %s increment failed: %v", name, err)
	}
}

// Snapshot returns the current counter values; an unavailable cache yields an
// empty snapshot rather than an error.
func (c *Counters) Snapshot(ctx context.Context) map[string]int64 {
	out := map[string]int64{}
	if c == nil || c.cache == nil {
		return out
	}
	fields, err := c.cache.HGetAll(ctx, countersKey)
	if err != nil {
		return out
	}
	for name, raw := range fields {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			out[name] = n
		}
	}
	return out
}
