package domain

import (
	"testing"

	orgdomain "github.com/conformly/conformly/internal/organization/domain"
)

func TestResolvePlan(t *testing.T) {
	tests := []struct {
		name         string
		metadataPlan string
		priceAmount  int64
		want         orgdomain.PlanType
	}{
		{name: "explicit starter", metadataPlan: "starter", priceAmount: 500000, want: orgdomain.PlanStarter},
		{name: "explicit professional", metadataPlan: "professional", want: orgdomain.PlanProfessional},
		{name: "explicit enterprise", metadataPlan: "enterprise", want: orgdomain.PlanEnterprise},
		{name: "unknown tag falls through to price", metadataPlan: "premium", priceAmount: 199000, want: orgdomain.PlanEnterprise},
		{name: "enterprise boundary", priceAmount: 199000, want: orgdomain.PlanEnterprise},
		{name: "just below enterprise", priceAmount: 198999, want: orgdomain.PlanProfessional},
		{name: "professional boundary", priceAmount: 79000, want: orgdomain.PlanProfessional},
		{name: "just below professional", priceAmount: 78999, want: orgdomain.PlanStarter},
		{name: "no signal defaults to starter", want: orgdomain.PlanStarter},
		{name: "negative amount defaults to starter", priceAmount: -1, want: orgdomain.PlanStarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePlan(tt.metadataPlan, tt.priceAmount); got != tt.want {
				t.Fatalf("ResolvePlan(%q, %d) = %q, want %q", tt.metadataPlan, tt.priceAmount, got, tt.want)
			}
		})
	}
}

func TestMapSubscriptionStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     orgdomain.SubscriptionStatus
	}{
		{provider: "trialing", want: orgdomain.SubscriptionStatusTrial},
		{provider: "canceled", want: orgdomain.SubscriptionStatusCancelled},
		{provider: "past_due", want: orgdomain.SubscriptionStatusPastDue},
		{provider: "active", want: orgdomain.SubscriptionStatusActive},
		{provider: "incomplete", want: orgdomain.SubscriptionStatusActive},
		{provider: "", want: orgdomain.SubscriptionStatusActive},
	}
	for _, tt := range tests {
		if got := MapSubscriptionStatus(tt.provider); got != tt.want {
			t.Fatalf("MapSubscriptionStatus(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
