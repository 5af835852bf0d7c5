package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/conformly/conformly/internal/notification/domain"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"github.com/conformly/conformly/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	OrgRepo  orgdomain.Repository
	Provider email.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	orgRepo  orgdomain.Repository
	provider email.Provider
}

func NewService(p Params) notificationdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("notification.service"),
		orgRepo:  p.OrgRepo,
		provider: p.Provider,
	}
}

var subjects = map[notificationdomain.TransitionKind]string{
	notificationdomain.TransitionActivated:     "Your subscription is active",
	notificationdomain.TransitionUpdated:       "Your subscription was updated",
	notificationdomain.TransitionCancelled:     "Your subscription was cancelled",
	notificationdomain.TransitionPaymentFailed: "Payment failed: action required",
}

var bodyTemplate = template.Must(template.New("subscription_change").Parse(`
<p>Hello {{.OrgName}},</p>
<p>{{.Message}}</p>
{{if .GraceNote}}<p>{{.GraceNote}}</p>{{end}}
<p>The Conformly team</p>
`))

var messages = map[notificationdomain.TransitionKind]string{
	notificationdomain.TransitionActivated:     "Your Conformly subscription has been activated. You now have full access to your plan.",
	notificationdomain.TransitionUpdated:       "Your Conformly subscription details have changed. Sign in to review your current plan.",
	notificationdomain.TransitionCancelled:     "Your Conformly subscription has been cancelled. Your account has been moved to the free tier.",
	notificationdomain.TransitionPaymentFailed: "We could not collect your latest payment. Please update your payment method.",
}

// NotifySubscriptionChange looks up the organization contact and sends a fixed
// template. Best-effort throughout: every early exit returns nil after a log
// line.
func (s *Service) NotifySubscriptionChange(ctx context.Context, orgID snowflake.ID, kind notificationdomain.TransitionKind, details map[string]any) error {
	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		s.log.Warn("notification skipped: organization lookup failed",
			zap.String("org_id", orgID.String()),
			zap.Error(err),
		)
		return nil
	}

	to := strings.TrimSpace(org.ContactEmail)
	if to == "" {
		s.log.Debug("notification skipped: no contact email",
			zap.String("org_id", orgID.String()),
		)
		return nil
	}

	subject, ok := subjects[kind]
	if !ok {
		subject = "Subscription update"
	}

	data := map[string]any{
		"OrgName": org.Name,
		"Message": messages[kind],
	}
	if kind == notificationdomain.TransitionPaymentFailed {
		if deadline, ok := details["grace_period_end"]; ok {
			data["GraceNote"] = fmt.Sprintf("Access is preserved until %v. After that your account may be limited.", deadline)
		}
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		s.log.Warn("notification skipped: template render failed", zap.Error(err))
		return nil
	}

	if err := s.provider.Send(ctx, []string{to}, subject, body.String()); err != nil {
		s.log.Warn("notification send failed",
			zap.String("org_id", orgID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	return nil
}
