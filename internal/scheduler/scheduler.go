// Package scheduler runs the periodic compliance sweep.
package scheduler

import (
	"context"
	"time"

	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	"github.com/conformly/conformly/internal/clock"
	compliancedomain "github.com/conformly/conformly/internal/compliance/domain"
	"github.com/conformly/conformly/internal/config"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	Cfg           config.Config
	Clock         clock.Clock
	OrgSvc        orgdomain.Service
	ComplianceSvc compliancedomain.Service
	AuditSvc      auditdomain.Service
}

type Scheduler struct {
	log           *zap.Logger
	interval      time.Duration
	clock         clock.Clock
	orgSvc        orgdomain.Service
	complianceSvc compliancedomain.Service
	auditSvc      auditdomain.Service

	stop chan struct{}
	done chan struct{}
}

func New(p Params) *Scheduler {
	interval := p.Cfg.ComplianceSweepInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		log:           p.Log.Named("scheduler"),
		interval:      interval,
		clock:         p.Clock,
		orgSvc:        p.OrgSvc,
		complianceSvc: p.ComplianceSvc,
		auditSvc:      p.AuditSvc,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.loop()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(context.Background())
		}
	}
}

// Sweep generates a monthly report per organization and flags organizations
// whose grace period has elapsed. Per-org failures do not stop the sweep.
func (s *Scheduler) Sweep(ctx context.Context) {
	orgs, err := s.orgSvc.List(ctx, 0)
	if err != nil {
		s.log.Error("sweep aborted: organization list failed", zap.Error(err))
		return
	}

	now := s.clock.Now()
	for _, org := range orgs {
		if org == nil {
			continue
		}

		report, err := s.complianceSvc.GenerateReport(ctx, compliancedomain.GenerateReportRequest{
			OrgID:  org.ID,
			Period: compliancedomain.PeriodMonthly,
		})
		if err != nil {
			s.log.Warn("sweep: report generation failed",
				zap.String("org_id", org.ID.String()),
				zap.Error(err),
			)
		} else {
			s.log.Info("sweep: compliance report generated",
				zap.String("org_id", org.ID.String()),
				zap.Int("overall_percentage", report.OverallPercentage),
				zap.String("trend", string(report.Trend)),
				zap.Int("critical_alerts", len(report.CriticalAlerts)),
			)
		}

		s.flagElapsedGrace(ctx, org, now)
	}
}

// flagElapsedGrace records visibility-only audit entries; no automatic
// downgrade happens here, the webhook path owns state transitions.
func (s *Scheduler) flagElapsedGrace(ctx context.Context, org *orgdomain.Organization, now time.Time) {
	if org.SubscriptionStatus == nil || *org.SubscriptionStatus != orgdomain.SubscriptionStatusPastDue {
		return
	}
	if org.GracePeriodEnd == nil || org.GracePeriodEnd.After(now) {
		return
	}
	_ = s.auditSvc.Record(ctx, &org.ID, "grace_period.elapsed", orgdomain.Organization{}.TableName(), map[string]any{
		"grace_period_end": org.GracePeriodEnd,
	})
}
