package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/clock"
	"github.com/conformly/conformly/internal/compliance/domain"
	obsmetrics "github.com/conformly/conformly/internal/observability/metrics"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	OrgRepo orgdomain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	orgRepo orgdomain.Repository
	metrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("compliance.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		orgRepo: p.OrgRepo,
		metrics: p.Metrics,
	}
}

// snapshot holds one window's classified counts.
type snapshot struct {
	categories []domain.CategoryBreakdown
	alerts     []domain.CriticalAlert
	compliant  int
	total      int
}

func (s *Service) GenerateReport(ctx context.Context, req domain.GenerateReportRequest) (*domain.ComplianceReport, error) {
	period := req.Period
	if _, ok := domain.ParsePeriod(string(period)); !ok {
		return nil, domain.ErrInvalidPeriod
	}

	// A missing organization fails the whole report; everything below degrades.
	if _, err := s.orgRepo.FindByID(ctx, s.db, req.OrgID); err != nil {
		if s.metrics != nil {
			s.metrics.RecordComplianceReport(string(period), "failed")
		}
		return nil, err
	}

	end := s.clock.Now()
	if req.EndDate != nil {
		end = req.EndDate.UTC()
	}
	start := end.AddDate(0, -period.Months(), 0)
	previousEnd := start

	current := s.aggregate(ctx, req.OrgID, end)
	previous := s.aggregate(ctx, req.OrgID, previousEnd)

	overall := domain.Percentage(current.compliant, current.total)
	previousOverall := domain.Percentage(previous.compliant, previous.total)

	report := &domain.ComplianceReport{
		OrgID:              req.OrgID,
		Period:             period,
		WindowStart:        start,
		WindowEnd:          end,
		OverallPercentage:  overall,
		PreviousPercentage: previousOverall,
		Trend:              domain.ClassifyTrend(overall, previousOverall),
		Categories:         current.categories,
		CriticalAlerts:     current.alerts,
		GeneratedAt:        s.clock.Now(),
	}

	if s.metrics != nil {
		s.metrics.RecordComplianceReport(string(period), "generated")
	}
	return report, nil
}

// aggregate fetches and classifies all four categories against the window end.
func (s *Service) aggregate(ctx context.Context, orgID snowflake.ID, end time.Time) snapshot {
	var snap snapshot

	training, err := s.repo.ListTraining(ctx, s.db, orgID, end)
	if err != nil {
		s.degrade(&snap, domain.CategoryTraining, err)
	} else {
		breakdown := domain.CategoryBreakdown{Category: domain.CategoryTraining}
		for _, record := range training {
			status, days := domain.ClassifyExpiry(record.ExpiryDate, end)
			tally(&breakdown, status)
			snap.collectAlert(domain.CategoryTraining, record.ID, record.Title, record.ExpiryDate, status, days)
		}
		finish(&snap, &breakdown)
	}

	medical, err := s.repo.ListMedical(ctx, s.db, orgID, end)
	if err != nil {
		s.degrade(&snap, domain.CategoryMedical, err)
	} else {
		breakdown := domain.CategoryBreakdown{Category: domain.CategoryMedical}
		for _, record := range medical {
			status, days := domain.ClassifyExpiry(record.ExpiryDate, end)
			tally(&breakdown, status)
			snap.collectAlert(domain.CategoryMedical, record.ID, record.ExamType, record.ExpiryDate, status, days)
		}
		finish(&snap, &breakdown)
	}

	equipment, err := s.repo.ListEquipment(ctx, s.db, orgID, end)
	if err != nil {
		s.degrade(&snap, domain.CategoryEquipment, err)
	} else {
		breakdown := domain.CategoryBreakdown{Category: domain.CategoryEquipment}
		for _, record := range equipment {
			status, days := domain.ClassifyExpiry(record.ExpiryDate, end)
			tally(&breakdown, status)
			snap.collectAlert(domain.CategoryEquipment, record.ID, record.Name, record.ExpiryDate, status, days)
		}
		finish(&snap, &breakdown)
	}

	documents, err := s.repo.ListDocuments(ctx, s.db, orgID, end)
	if err != nil {
		s.degrade(&snap, domain.CategoryDocuments, err)
	} else {
		breakdown := domain.CategoryBreakdown{Category: domain.CategoryDocuments}
		for _, record := range documents {
			// Documents never alert; stale paperwork is not a safety deadline.
			tally(&breakdown, domain.ClassifyDocumentAge(record.CreatedAt, end))
		}
		finish(&snap, &breakdown)
	}

	sort.SliceStable(snap.alerts, func(i, j int) bool {
		return snap.alerts[i].DaysUntilExpiry < snap.alerts[j].DaysUntilExpiry
	})
	if len(snap.alerts) > domain.AlertCap {
		snap.alerts = snap.alerts[:domain.AlertCap]
	}

	return snap
}

func (s *Service) degrade(snap *snapshot, category string, err error) {
	s.log.Warn("compliance query failed; category degraded to zero",
		zap.String("category", category),
		zap.Error(err),
	)
	snap.categories = append(snap.categories, domain.CategoryBreakdown{Category: category})
}

func (snap *snapshot) collectAlert(category string, id snowflake.ID, title string, expiry *time.Time, status domain.ItemStatus, days int) {
	if status == domain.ItemExpired || (status == domain.ItemExpiring && days <= domain.CriticalWindowDays) {
		snap.alerts = append(snap.alerts, domain.CriticalAlert{
			Category:        category,
			RecordID:        id.String(),
			Title:           title,
			ExpiryDate:      expiry,
			DaysUntilExpiry: days,
		})
	}
}

func tally(breakdown *domain.CategoryBreakdown, status domain.ItemStatus) {
	breakdown.TotalCount++
	switch status {
	case domain.ItemValid:
		breakdown.CompliantCount++
	case domain.ItemExpiring:
		breakdown.ExpiringCount++
	case domain.ItemExpired:
		breakdown.ExpiredCount++
	}
}

func finish(snap *snapshot, breakdown *domain.CategoryBreakdown) {
	breakdown.CompliancePercentage = domain.Percentage(breakdown.CompliantCount, breakdown.TotalCount)
	snap.categories = append(snap.categories, *breakdown)
	snap.compliant += breakdown.CompliantCount
	snap.total += breakdown.TotalCount
}
