// Package domain defines the transactional notification contract.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// TransitionKind categorizes a subscription state transition for templating.
type TransitionKind string

const (
	TransitionActivated     TransitionKind = "activated"
	TransitionUpdated       TransitionKind = "updated"
	TransitionCancelled     TransitionKind = "cancelled"
	TransitionPaymentFailed TransitionKind = "payment_failed"
)

// Service sends best-effort transactional email. The state transition is the
// source of truth; a missing transport, missing contact address or delivery
// failure never propagates to the caller as a hard error.
type Service interface {
	NotifySubscriptionChange(ctx context.Context, orgID snowflake.ID, kind TransitionKind, details map[string]any) error
}
