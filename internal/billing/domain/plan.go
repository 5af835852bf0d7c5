package domain

import (
	"strings"

	orgdomain "github.com/conformly/conformly/internal/organization/domain"
)

// Price breakpoints in minor units. Ties go to the higher tier.
const (
	enterprisePriceThreshold   = 199000
	professionalPriceThreshold = 79000
)

// ResolvePlan derives a tier from a subscription's metadata tag or, failing
// that, its price amount. Total: always returns one of the three tiers.
func ResolvePlan(metadataPlan string, priceAmount int64) orgdomain.PlanType {
	if plan, ok := orgdomain.ParsePlanType(strings.TrimSpace(metadataPlan)); ok {
		return plan
	}
	switch {
	case priceAmount >= enterprisePriceThreshold:
		return orgdomain.PlanEnterprise
	case priceAmount >= professionalPriceThreshold:
		return orgdomain.PlanProfessional
	default:
		return orgdomain.PlanStarter
	}
}

// MapSubscriptionStatus maps a provider subscription status onto ours.
func MapSubscriptionStatus(providerStatus string) orgdomain.SubscriptionStatus {
	switch strings.TrimSpace(providerStatus) {
	case "trialing":
		return orgdomain.SubscriptionStatusTrial
	case "canceled":
		return orgdomain.SubscriptionStatusCancelled
	case "past_due":
		return orgdomain.SubscriptionStatusPastDue
	default:
		return orgdomain.SubscriptionStatusActive
	}
}
