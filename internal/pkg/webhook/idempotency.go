package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Result is the JSON-shaped outcome of processing one event. Handlers attach
// entity-specific fields next to the common status/action pair.
type Result map[string]interface{}

// Idempotency deduplicates events by (provider, event_id) and serializes
// concurrent processing of the same event through a short-lived lock. All
// store failures degrade toward reprocessing, never toward rejecting traffic.
type Idempotency struct {
	store    Store
	provider string
	ttl      time.Duration
	lockTTL  time.Duration
}

func NewIdempotency(store Store, provider string, ttl, lockTTL time.Duration) *Idempotency {
	return &Idempotency{store: store, provider: provider, ttl: ttl, lockTTL: lockTTL}
}

func (i *Idempotency) resultKey(eventID string) string {
	return fmt.Sprintf("idem:%s:%s", i.provider, eventID)
}

func (i *Idempotency) lockKey(eventID string) string {
	return fmt.Sprintf("lock:%s:%s", i.provider, eventID)
}

// Check returns the stored result for an already-processed event. A lookup
// error counts as a miss.
func (i *Idempotency) Check(ctx context.Context, eventID string) (Result, bool) {
	data, err := i.store.Get(ctx, i.resultKey(eventID))
	if err != nil || data == "" {
		return nil, false
	}
	var result Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		// The record exists but is unreadable; still short-circuit.
		return Result{"cached": true}, true
	}
	return result, true
}

// AcquireLock claims exclusive processing rights for eventID within the lock
// TTL. There is no explicit unlock; the lock expires on its own. A store
// error is treated as lock acquired.
func (i *Idempotency) AcquireLock(ctx context.Context, eventID string) bool {
	ok, err := i.store.SetNX(ctx, i.lockKey(eventID), "1", i.lockTTL)
	if err != nil {
		log.Printf("processing lock unavailable, failing open: %v", err)
		return true
	}
	return ok
}

// StoreResult persists the processing outcome under the idempotency key,
// overwriting any prior value. Best-effort: errors are logged and swallowed.
func (i *Idempotency) StoreResult(ctx context.Context, eventID string, result Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("idempotency result for %s not serializable: %v", eventID, err)
		return
	}
	if err := i.store.SetEx(ctx, i.resultKey(eventID), payload, i.ttl); err != nil {
		log.Printf("idempotency store failed for %s: %v", eventID, err)
	}
}
