package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) HandleListAuditLogs(c *gin.Context) {
	var req auditdomain.ListAuditLogRequest
	if err := c.ShouldBindQuery(&req.Pagination); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	orgID, err := snowflake.ParseString(strings.TrimSpace(c.Query("org_id")))
	if err != nil || orgID == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.OrgID = orgID
	req.Action = c.Query("action")

	resp, err := s.auditSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
