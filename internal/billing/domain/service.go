package domain

import (
	"context"
)

// Service synchronizes organization subscription state from provider webhooks.
type Service interface {
	// ProcessWebhook verifies and dispatches one delivery. It returns
	// ErrInvalidSignature (from the stripe package) for unauthenticated
	// payloads; every other outcome, including business failures, yields nil
	// so the transport acknowledges the delivery and the provider stops
	// retrying. Failures are visible in the webhook event log.
	ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string) error

	// ListWebhookLogs exposes processing outcomes for the admin screen.
	ListWebhookLogs(ctx context.Context, filter ListWebhookLogFilter) ([]WebhookEventLog, error)
}
