package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventIDFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"event_id preferred", `{"event_id":"ev1","id":"other"}`, "ev1"},
		{"id fallback", `{"id":"ev2"}`, "ev2"},
		{"sentinel when absent", `{"type":"payment.created"}`, FallbackEventID},
		{"sentinel when wrong type", `{"event_id":42}`, FallbackEventID},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			event, err := ParseEvent([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, event.EventID)
		})
	}
}

func TestParseEventRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseEvent([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDispatchPaymentCreated(t *testing.T) {
	t.Parallel()

	body := `{"type":"payment.created","event_id":"ev1","data":{"object":{"payment":{"id":"p1","amount_money":{"amount":2500,"currency":"USD"},"status":"COMPLETED"}}}}`
	event, err := ParseEvent([]byte(body))
	require.NoError(t, err)

	result, err := Dispatch(event)
	require.NoError(t, err)
	assert.Equal(t, "processed", result["status"])
	assert.Equal(t, "payment_created", result["action"])
	assert.Equal(t, "p1", result["payment_id"])
	assert.Equal(t, 25.0, result["amount"])
	assert.Equal(t, "USD", result["currency"])
	assert.Equal(t, "COMPLETED", result["payment_status"])
}

func TestDispatchPaymentUpdated(t *testing.T) {
	t.Parallel()

	body := `{"type":"payment.updated","event_id":"ev2","data":{"object":{"payment":{"id":"p2","amount_money":{"amount":150,"currency":"EUR"},"status":"APPROVED"}}}}`
	event, err := ParseEvent([]byte(body))
	require.NoError(t, err)

	result, err := Dispatch(event)
	require.NoError(t, err)
	assert.Equal(t, "payment_updated", result["action"])
	assert.Equal(t, 1.5, result["amount"])
}

func TestDispatchRefundCreated(t *testing.T) {
	t.Parallel()

	body := `{"type":"refund.created","event_id":"ev3","data":{"object":{"refund":{"id":"r1","payment_id":"p1","amount_money":{"amount":500,"currency":"USD"},"status":"PENDING"}}}}`
	event, err := ParseEvent([]byte(body))
	require.NoError(t, err)

	result, err := Dispatch(event)
	require.NoError(t, err)
	assert.Equal(t, "refund_created", result["action"])
	assert.Equal(t, "r1", result["refund_id"])
	assert.Equal(t, "p1", result["payment_id"])
	assert.Equal(t, 5.0, result["amount"])
	assert.Equal(t, "PENDING", result["refund_status"])
}

func TestDispatchInvoicePaymentMade(t *testing.T) {
	t.Parallel()

	body := `{"type":"invoice.payment_made","event_id":"ev4","data":{"object":{"invoice":{"id":"inv1","status":"PAID"}}}}`
	event, err := ParseEvent([]byte(body))
	require.NoError(t, err)

	result, err := Dispatch(event)
	require.NoError(t, err)
	assert.Equal(t, "invoice_payment_made", result["action"])
	assert.Equal(t, "inv1", result["invoice_id"])
	assert.Equal(t, "PAID", result["invoice_status"])
}

func TestDispatchUnknownTypeIsIgnoredNotError(t *testing.T) {
	t.Parallel()

	event, err := ParseEvent([]byte(`{"type":"unknown.event","event_id":"ev5"}`))
	require.NoError(t, err)

	result, err := Dispatch(event)
	require.NoError(t, err)
	assert.Equal(t, "ignored", result["status"])
	assert.Equal(t, "Unhandled event type: unknown.event", result["reason"])
}

func TestDispatchMissingFieldsDefaultInsteadOfFailing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"no data at all", `{"type":"payment.created","event_id":"ev6"}`},
		{"empty object", `{"type":"payment.created","event_id":"ev7","data":{"object":{}}}`},
		{"payment without money", `{"type":"payment.created","event_id":"ev8","data":{"object":{"payment":{"id":"p9"}}}}`},
		{"wrong shape", `{"type":"refund.created","event_id":"ev9","data":{"object":{"refund":"oops"}}}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			event, err := ParseEvent([]byte(tc.body))
			require.NoError(t, err)

			result, err := Dispatch(event)
			require.NoError(t, err)
			assert.Equal(t, "processed", result["status"])
			assert.Equal(t, 0.0, result["amount"])
		})
	}
}
