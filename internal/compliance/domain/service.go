package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type GenerateReportRequest struct {
	OrgID   snowflake.ID
	Period  Period
	EndDate *time.Time
}

type Service interface {
	// GenerateReport recomputes the full report for the requested window.
	// Stateless and idempotent; per-category query failures degrade that
	// category to zero counts rather than failing the report.
	GenerateReport(ctx context.Context, req GenerateReportRequest) (*ComplianceReport, error)
}

var (
	ErrInvalidPeriod = errors.New("invalid_period")
)

// ParsePeriod validates a raw period string.
func ParsePeriod(raw string) (Period, bool) {
	switch Period(raw) {
	case PeriodMonthly, PeriodQuarterly:
		return Period(raw), true
	default:
		return "", false
	}
}

// Months returns the lookback length of the period.
func (p Period) Months() int {
	if p == PeriodQuarterly {
		return 3
	}
	return 1
}
