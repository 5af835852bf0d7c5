package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/conformly/conformly/internal/billing/domain"
	"github.com/gin-gonic/gin"
)

// HandleListWebhookLogs backs the admin system-health screen: processing
// outcomes per delivery, independent of the business audit trail.
func (s *Server) HandleListWebhookLogs(c *gin.Context) {
	var filter billingdomain.ListWebhookLogFilter

	if raw := strings.TrimSpace(c.Query("org_id")); raw != "" {
		orgID, err := snowflake.ParseString(raw)
		if err != nil || orgID == 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		filter.OrgID = orgID
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		filter.Status = billingdomain.WebhookLogStatus(raw)
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		filter.Limit = limit
	}

	logs, err := s.billingSvc.ListWebhookLogs(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhook_logs": logs})
}
