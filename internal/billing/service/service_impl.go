package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	billingdomain "github.com/conformly/conformly/internal/billing/domain"
	"github.com/conformly/conformly/internal/billing/stripe"
	"github.com/conformly/conformly/internal/clock"
	"github.com/conformly/conformly/internal/config"
	notificationdomain "github.com/conformly/conformly/internal/notification/domain"
	obsmetrics "github.com/conformly/conformly/internal/observability/metrics"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriptionFetcher recovers a subscription from the provider. Needed only
// for invoice.payment_failed, whose payload does not carry our metadata.
type SubscriptionFetcher interface {
	GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
}

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Cfg           config.Config
	Clock         clock.Clock
	Repo          billingdomain.Repository
	OrgRepo       orgdomain.Repository
	AuditSvc      auditdomain.Service
	Notifier      notificationdomain.Service
	Subscriptions SubscriptionFetcher
	Metrics       *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	webhookSecret string
	clock         clock.Clock
	repo          billingdomain.Repository
	orgRepo       orgdomain.Repository
	auditSvc      auditdomain.Service
	notifier      notificationdomain.Service
	subscriptions SubscriptionFetcher
	metrics       *obsmetrics.Metrics
}

func NewService(p Params) billingdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("billing.service"),
		genID:         p.GenID,
		webhookSecret: p.Cfg.StripeWebhookSecret,
		clock:         p.Clock,
		repo:          p.Repo,
		orgRepo:       p.OrgRepo,
		auditSvc:      p.AuditSvc,
		notifier:      p.Notifier,
		subscriptions: p.Subscriptions,
		metrics:       p.Metrics,
	}
}

// ProcessWebhook is strictly sequential per delivery: verify, resolve, update,
// log, notify. Business failures after signature verification are recorded in
// the webhook event log and acknowledged to the provider, so retries stay
// under our control rather than Stripe's.
func (s *Service) ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := stripe.VerifySignature(payload, signatureHeader, s.webhookSecret); err != nil {
		return err
	}

	event, err := stripe.ParseEvent(payload)
	if err != nil {
		s.log.Error("webhook payload unparseable after valid signature", zap.Error(err))
		return nil
	}

	var orgID *snowflake.ID
	var handlerErr error
	status := billingdomain.WebhookLogProcessed

	switch event.Type {
	case stripe.EventCheckoutCompleted:
		orgID, handlerErr = s.handleCheckoutCompleted(ctx, event)
	case stripe.EventSubscriptionUpdated:
		orgID, handlerErr = s.handleSubscriptionUpdated(ctx, event)
	case stripe.EventSubscriptionDeleted:
		orgID, handlerErr = s.handleSubscriptionDeleted(ctx, event)
	case stripe.EventInvoicePaymentFailed:
		orgID, handlerErr = s.handleInvoicePaymentFailed(ctx, event)
	default:
		status = billingdomain.WebhookLogIgnored
	}

	if handlerErr != nil {
		status = billingdomain.WebhookLogFailed
		s.log.Error("webhook processing failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(handlerErr),
		)
	}

	s.writeLog(ctx, event, orgID, status, handlerErr, payload)
	if s.metrics != nil {
		s.metrics.RecordWebhookEvent(event.Type, string(status))
	}

	return nil
}

func (s *Service) ListWebhookLogs(ctx context.Context, filter billingdomain.ListWebhookLogFilter) ([]billingdomain.WebhookEventLog, error) {
	if filter.Limit <= 0 || filter.Limit > 250 {
		filter.Limit = 100
	}
	items, err := s.repo.ListLogs(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	logs := make([]billingdomain.WebhookEventLog, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		logs = append(logs, *item)
	}
	return logs, nil
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) (*snowflake.ID, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}

	rawOrgID := strings.TrimSpace(session.Metadata["org_id"])
	rawPlanID := strings.TrimSpace(session.Metadata["plan_id"])
	if rawOrgID == "" || rawPlanID == "" {
		// Upstream checkout misconfiguration, not retriable by Stripe.
		_ = s.auditSvc.Record(ctx, nil, "subscription.activation_failed", orgdomain.Organization{}.TableName(), map[string]any{
			"event_id": event.ID,
			"reason":   "missing org_id or plan_id in checkout metadata",
		})
		return nil, billingdomain.ErrMissingMetadata
	}

	orgID, err := snowflake.ParseString(rawOrgID)
	if err != nil || orgID == 0 {
		_ = s.auditSvc.Record(ctx, nil, "subscription.activation_failed", orgdomain.Organization{}.TableName(), map[string]any{
			"event_id": event.ID,
			"reason":   "unparseable org_id in checkout metadata",
		})
		return nil, billingdomain.ErrMissingMetadata
	}

	plan := billingdomain.ResolvePlan(rawPlanID, 0)
	now := s.clock.Now()
	status := orgdomain.SubscriptionStatusActive

	fields := map[string]any{
		"stripe_subscription_id":    session.Subscription,
		"plan_type":                 plan,
		"subscription_status":       status,
		"subscription_activated_at": now,
		"grace_period_end":          nil,
	}
	if err := s.orgRepo.UpdateSubscriptionFields(ctx, s.db, orgID, fields); err != nil {
		return &orgID, err
	}

	_ = s.auditSvc.Record(ctx, &orgID, "subscription.activated", orgdomain.Organization{}.TableName(), map[string]any{
		"event_id":               event.ID,
		"plan_type":              string(plan),
		"stripe_subscription_id": session.Subscription,
	})
	s.notify(ctx, orgID, notificationdomain.TransitionActivated, nil)
	return &orgID, nil
}

func (s *Service) handleSubscriptionUpdated(ctx context.Context, event *stripe.Event) (*snowflake.ID, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}

	org, err := s.resolveOrganization(ctx, sub.Metadata, sub.ID)
	if err != nil {
		return nil, err
	}

	plan := billingdomain.ResolvePlan(sub.Metadata["plan_id"], sub.PriceAmount())
	status := billingdomain.MapSubscriptionStatus(sub.Status)

	fields := map[string]any{
		"plan_type":           plan,
		"subscription_status": status,
	}
	if err := s.orgRepo.UpdateSubscriptionFields(ctx, s.db, org.ID, fields); err != nil {
		return &org.ID, err
	}

	_ = s.auditSvc.Record(ctx, &org.ID, "subscription.updated", orgdomain.Organization{}.TableName(), map[string]any{
		"event_id":            event.ID,
		"plan_type":           string(plan),
		"subscription_status": string(status),
	})
	s.notify(ctx, org.ID, notificationdomain.TransitionUpdated, nil)
	return &org.ID, nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) (*snowflake.ID, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}

	org, err := s.resolveOrganization(ctx, sub.Metadata, sub.ID)
	if err != nil {
		return nil, err
	}

	// Downgrade to free. Re-applying the same event yields the same end state.
	fields := map[string]any{
		"plan_type":                 nil,
		"subscription_status":       orgdomain.SubscriptionStatusCancelled,
		"stripe_subscription_id":    nil,
		"subscription_cancelled_at": s.clock.Now(),
	}
	if err := s.orgRepo.UpdateSubscriptionFields(ctx, s.db, org.ID, fields); err != nil {
		return &org.ID, err
	}

	_ = s.auditSvc.Record(ctx, &org.ID, "subscription.cancelled", orgdomain.Organization{}.TableName(), map[string]any{
		"event_id":               event.ID,
		"stripe_subscription_id": sub.ID,
	})
	s.notify(ctx, org.ID, notificationdomain.TransitionCancelled, nil)
	return &org.ID, nil
}

func (s *Service) handleInvoicePaymentFailed(ctx context.Context, event *stripe.Event) (*snowflake.ID, error) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Object, &invoice); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(invoice.Subscription) == "" {
		return nil, billingdomain.ErrMissingSubscription
	}

	// The invoice payload carries no org metadata; recover it from the
	// subscription via the provider API.
	sub, err := s.subscriptions.GetSubscription(ctx, invoice.Subscription)
	if err != nil {
		return nil, err
	}

	org, err := s.resolveOrganization(ctx, sub.Metadata, sub.ID)
	if err != nil {
		return nil, err
	}

	deadline := s.clock.Now().Add(billingdomain.GracePeriod)
	fields := map[string]any{
		"subscription_status": orgdomain.SubscriptionStatusPastDue,
		"grace_period_end":    deadline,
	}
	if err := s.orgRepo.UpdateSubscriptionFields(ctx, s.db, org.ID, fields); err != nil {
		return &org.ID, err
	}

	_ = s.auditSvc.Record(ctx, &org.ID, "subscription.payment_failed", orgdomain.Organization{}.TableName(), map[string]any{
		"event_id":         event.ID,
		"invoice_id":       invoice.ID,
		"grace_period_end": deadline,
	})
	s.notify(ctx, org.ID, notificationdomain.TransitionPaymentFailed, map[string]any{
		"grace_period_end": deadline.Format("2006-01-02"),
	})
	return &org.ID, nil
}

// resolveOrganization prefers the org_id carried in event metadata and falls
// back to the stored provider subscription id.
func (s *Service) resolveOrganization(ctx context.Context, metadata map[string]string, subscriptionID string) (*orgdomain.Organization, error) {
	if raw := strings.TrimSpace(metadata["org_id"]); raw != "" {
		orgID, err := snowflake.ParseString(raw)
		if err == nil && orgID != 0 {
			return s.orgRepo.FindByID(ctx, s.db, orgID)
		}
	}
	return s.orgRepo.FindByStripeSubscriptionID(ctx, s.db, subscriptionID)
}

func (s *Service) notify(ctx context.Context, orgID snowflake.ID, kind notificationdomain.TransitionKind, details map[string]any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifySubscriptionChange(ctx, orgID, kind, details); err != nil {
		s.log.Warn("notification failed",
			zap.String("org_id", orgID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func (s *Service) writeLog(ctx context.Context, event *stripe.Event, orgID *snowflake.ID, status billingdomain.WebhookLogStatus, handlerErr error, payload []byte) {
	entry := billingdomain.WebhookEventLog{
		ID:            s.genID.Generate(),
		StripeEventID: event.ID,
		EventType:     event.Type,
		OrgID:         orgID,
		Status:        status,
		Payload:       datatypes.JSON(payload),
		CreatedAt:     s.clock.Now(),
	}
	if handlerErr != nil {
		msg := handlerErr.Error()
		entry.Error = &msg
	}
	if err := s.repo.InsertLog(ctx, s.db, &entry); err != nil {
		s.log.Warn("failed to write webhook event log",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}
