package constants

// Static route constants
const (
	APIV1Prefix = "/api/v1"

	SquareWebhookRoute = "/webhooks/square"
	HealthRoute        = "/health"
	MetricsRoute       = "/metrics"
)
