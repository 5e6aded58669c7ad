package webhook

import "fmt"

// EventType enumerates the Square event types this service understands. The
// zero value is the forward-compatible "unknown" bucket: anything the sender
// introduces later is acknowledged and ignored rather than rejected.
type EventType int

const (
	EventUnknown EventType = iota
	EventPaymentCreated
	EventPaymentUpdated
	EventRefundCreated
	EventInvoicePaymentMade
)

func eventTypeOf(s string) EventType {
	switch s {
	case "payment.created":
		return EventPaymentCreated
	case "payment.updated":
		return EventPaymentUpdated
	case "refund.created":
		return EventRefundCreated
	case "invoice.payment_made":
		return EventInvoicePaymentMade
	default:
		return EventUnknown
	}
}

// Dispatch routes a parsed event to its type-specific handler and returns the
// normalized result. Handler errors propagate to the caller, which is
// responsible for converting them into a stored error result.
func Dispatch(event *Event) (Result, error) {
	switch eventTypeOf(event.Type) {
	case EventPaymentCreated:
		return handlePayment(event, "payment_created")
	case EventPaymentUpdated:
		return handlePayment(event, "payment_updated")
	case EventRefundCreated:
		return handleRefund(event)
	case EventInvoicePaymentMade:
		return handleInvoicePayment(event)
	case EventUnknown:
		fallthrough
	default:
		return Result{
			"status": "ignored",
			"reason": fmt.Sprintf("Unhandled event type: %s", event.Type),
		}, nil
	}
}

func handlePayment(event *Event, action string) (Result, error) {
	payment := nestedObject(event.Payload, "data", "object", "payment")
	money := nestedObject(payment, "amount_money")

	return Result{
		"status":         "processed",
		"action":         action,
		"payment_id":     stringField(payment, "id"),
		"amount":         minorToMajor(numberField(money, "amount")),
		"currency":       stringField(money, "currency"),
		"payment_status": stringField(payment, "status"),
	}, nil
}

func handleRefund(event *Event) (Result, error) {
	refund := nestedObject(event.Payload, "data", "object", "refund")
	money := nestedObject(refund, "amount_money")

	return Result{
		"status":        "processed",
		"action":        "refund_created",
		"refund_id":     stringField(refund, "id"),
		"payment_id":    stringField(refund, "payment_id"),
		"amount":        minorToMajor(numberField(money, "amount")),
		"currency":      stringField(money, "currency"),
		"refund_status": stringField(refund, "status"),
	}, nil
}

func handleInvoicePayment(event *Event) (Result, error) {
	invoice := nestedObject(event.Payload, "data", "object", "invoice")

	return Result{
		"status":         "processed",
		"action":         "invoice_payment_made",
		"invoice_id":     stringField(invoice, "id"),
		"invoice_status": stringField(invoice, "status"),
	}, nil
}

// nestedObject walks a path of object keys, returning an empty map as soon as
// a segment is missing or not an object. Handlers never fail on absent
// optional fields.
func nestedObject(m map[string]interface{}, path ...string) map[string]interface{} {
	current := m
	for _, key := range path {
		if current == nil {
			return map[string]interface{}{}
		}
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return map[string]interface{}{}
		}
		current = next
	}
	if current == nil {
		return map[string]interface{}{}
	}
	return current
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberField(m map[string]interface{}, key string) float64 {
	n, _ := m[key].(float64)
	return n
}

// minorToMajor converts integer minor units (cents) into a decimal
// major-unit amount.
func minorToMajor(minor float64) float64 {
	return minor / 100
}
