package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	compliancedomain "github.com/conformly/conformly/internal/compliance/domain"
	"github.com/gin-gonic/gin"
)

type complianceReportRequest struct {
	OrgID   string `json:"org_id" binding:"required"`
	Period  string `json:"period" binding:"required"`
	EndDate string `json:"end_date"`
}

func (s *Server) HandleComplianceReport(c *gin.Context) {
	var req complianceReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	orgID, err := snowflake.ParseString(strings.TrimSpace(req.OrgID))
	if err != nil || orgID == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	period, ok := compliancedomain.ParsePeriod(req.Period)
	if !ok {
		AbortWithError(c, compliancedomain.ErrInvalidPeriod)
		return
	}

	var endDate *time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		endDate = &parsed
	}

	report, err := s.complianceSvc.GenerateReport(c.Request.Context(), compliancedomain.GenerateReportRequest{
		OrgID:   orgID,
		Period:  period,
		EndDate: endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
