package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func (s *Server) HandleListOrganizations(c *gin.Context) {
	orgs, err := s.orgSvc.List(c.Request.Context(), 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func (s *Server) HandleGetOrganization(c *gin.Context) {
	orgID, ok := parseOrgID(c)
	if !ok {
		return
	}
	org, err := s.orgSvc.Get(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// HandleGetSubscription exposes just the subscription slice of the tenant
// record for the billing screen.
func (s *Server) HandleGetSubscription(c *gin.Context) {
	orgID, ok := parseOrgID(c)
	if !ok {
		return
	}
	org, err := s.orgSvc.Get(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"org_id":                    org.ID,
		"plan_type":                 org.PlanType,
		"subscription_status":       org.SubscriptionStatus,
		"stripe_subscription_id":    org.StripeSubscriptionID,
		"grace_period_end":          org.GracePeriodEnd,
		"subscription_activated_at": org.SubscriptionActivatedAt,
		"subscription_cancelled_at": org.SubscriptionCancelledAt,
	})
}

func parseOrgID(c *gin.Context) (snowflake.ID, bool) {
	orgID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || orgID == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return 0, false
	}
	return orgID, true
}
