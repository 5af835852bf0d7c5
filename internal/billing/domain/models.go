// Package domain contains the webhook processing log and plan resolution.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// WebhookLogStatus is the processing outcome recorded for a delivery.
type WebhookLogStatus string

const (
	WebhookLogProcessed WebhookLogStatus = "processed"
	WebhookLogFailed    WebhookLogStatus = "failed"
	WebhookLogIgnored   WebhookLogStatus = "ignored"
)

// WebhookEventLog is the operational trail of webhook processing, separate
// from the business audit log. One row per received event, whatever the
// business outcome. It stores the provider event id for traceability but does
// not gate reprocessing.
type WebhookEventLog struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	StripeEventID string           `gorm:"type:text;not null;index" json:"stripe_event_id"`
	EventType     string           `gorm:"type:text;not null" json:"event_type"`
	OrgID         *snowflake.ID    `gorm:"index" json:"org_id"`
	Status        WebhookLogStatus `gorm:"type:text;not null" json:"status"`
	Error         *string          `gorm:"type:text" json:"error"`
	Payload       datatypes.JSON   `gorm:"type:jsonb" json:"payload"`
	CreatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (WebhookEventLog) TableName() string { return "webhook_event_logs" }

type ListWebhookLogFilter struct {
	OrgID  snowflake.ID
	Status WebhookLogStatus
	Limit  int
}

var (
	ErrMissingMetadata     = errors.New("missing_metadata")
	ErrInvalidPayload      = errors.New("invalid_payload")
	ErrMissingSubscription = errors.New("missing_subscription")
)

// GracePeriod is the window after a failed payment during which access is not
// yet revoked.
const GracePeriod = 72 * time.Hour
