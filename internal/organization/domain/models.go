// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PlanType is a paid subscription tier. A nil plan on the organization means
// the free tier.
type PlanType string

const (
	PlanStarter      PlanType = "starter"
	PlanProfessional PlanType = "professional"
	PlanEnterprise   PlanType = "enterprise"
)

// SubscriptionStatus represents lifecycle states for an organization's subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
)

// Organization represents a tenant. Organizations are never deleted, only
// transitioned between subscription states.
type Organization struct {
	ID                      snowflake.ID        `gorm:"primaryKey" json:"id"`
	Name                    string              `gorm:"type:text;not null" json:"name"`
	Slug                    string              `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	ContactEmail            string              `gorm:"type:text;column:contact_email" json:"contact_email"`
	CountryCode             string              `gorm:"column:country_code" json:"country_code"`
	PlanType                *PlanType           `gorm:"type:text;column:plan_type" json:"plan_type"`
	SubscriptionStatus      *SubscriptionStatus `gorm:"type:text;column:subscription_status" json:"subscription_status"`
	StripeSubscriptionID    *string             `gorm:"type:text;column:stripe_subscription_id;index" json:"stripe_subscription_id"`
	GracePeriodEnd          *time.Time          `gorm:"column:grace_period_end" json:"grace_period_end"`
	SubscriptionActivatedAt *time.Time          `gorm:"column:subscription_activated_at" json:"subscription_activated_at"`
	SubscriptionCancelledAt *time.Time          `gorm:"column:subscription_cancelled_at" json:"subscription_cancelled_at"`
	Metadata                datatypes.JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt               time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// ParsePlanType validates a raw plan tag against the known tiers.
func ParsePlanType(raw string) (PlanType, bool) {
	switch PlanType(raw) {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return PlanType(raw), true
	default:
		return "", false
	}
}
