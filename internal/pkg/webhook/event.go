package webhook

import "encoding/json"

// FallbackEventID is used when a payload carries no usable identifier. Events
// without IDs therefore share one idempotency key; the sender contract makes
// this rare but it is a known collision risk.
const FallbackEventID = "no-id"

// Event is a parsed webhook payload. Payload keeps the full decoded JSON so
// handlers can walk provider-specific structures.
type Event struct {
	Type    string
	EventID string
	Payload map[string]interface{}
}

// ParseEvent decodes a webhook body. The event identifier comes from
// "event_id", then "id", then FallbackEventID.
func ParseEvent(rawBody []byte) (*Event, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, err
	}

	eventID, _ := payload["event_id"].(string)
	if eventID == "" {
		eventID, _ = payload["id"].(string)
	}
	if eventID == "" {
		eventID = FallbackEventID
	}

	eventType, _ := payload["type"].(string)

	return &Event{
		Type:    eventType,
		EventID: eventID,
		Payload: payload,
	}, nil
}
