package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	billingdomain "github.com/conformly/conformly/internal/billing/domain"
	"github.com/conformly/conformly/internal/billing/stripe"
	compliancedomain "github.com/conformly/conformly/internal/compliance/domain"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubBillingService struct {
	err       error
	payload   []byte
	signature string
}

func (s *stubBillingService) ProcessWebhook(_ context.Context, payload []byte, signatureHeader string) error {
	s.payload = payload
	s.signature = signatureHeader
	return s.err
}

func (s *stubBillingService) ListWebhookLogs(context.Context, billingdomain.ListWebhookLogFilter) ([]billingdomain.WebhookEventLog, error) {
	return nil, nil
}

type stubComplianceService struct {
	report *compliancedomain.ComplianceReport
	err    error
}

func (s *stubComplianceService) GenerateReport(context.Context, compliancedomain.GenerateReportRequest) (*compliancedomain.ComplianceReport, error) {
	return s.report, s.err
}

type stubOrgService struct{}

func (stubOrgService) Get(context.Context, snowflake.ID) (*orgdomain.Organization, error) {
	return nil, orgdomain.ErrOrganizationNotFound
}

func (stubOrgService) List(context.Context, int) ([]*orgdomain.Organization, error) {
	return nil, nil
}

type stubAuditService struct{}

func (stubAuditService) Record(context.Context, *snowflake.ID, string, string, map[string]any) error {
	return nil
}

func (stubAuditService) List(context.Context, auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	return auditdomain.ListAuditLogResponse{}, nil
}

func setupTestServer(t *testing.T, billing *stubBillingService, compliance *stubComplianceService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if compliance == nil {
		compliance = &stubComplianceService{}
	}
	srv := NewServer(Params{
		Log:           zap.NewNop(),
		BillingSvc:    billing,
		ComplianceSvc: compliance,
		OrgSvc:        stubOrgService{},
		AuditSvc:      stubAuditService{},
	})
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	registerRoutes(r, srv)
	return r
}

func TestHandleStripeWebhookInvalidSignature(t *testing.T) {
	billing := &stubBillingService{err: stripe.ErrInvalidSignature}
	r := setupTestServer(t, billing, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if received, ok := body["received"].(bool); !ok || received {
		t.Fatalf("expected received=false, got %v", body)
	}
}

func TestHandleStripeWebhookAcknowledges(t *testing.T) {
	billing := &stubBillingService{}
	r := setupTestServer(t, billing, nil)

	payload := `{"id":"evt_2","type":"checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if received, ok := body["received"].(bool); !ok || !received {
		t.Fatalf("expected received=true, got %v", body)
	}
	if string(billing.payload) != payload {
		t.Fatalf("expected raw body passed through, got %q", billing.payload)
	}
	if billing.signature != "t=1,v1=abc" {
		t.Fatalf("expected signature header passed through, got %q", billing.signature)
	}
}

func TestHandleComplianceReport(t *testing.T) {
	report := &compliancedomain.ComplianceReport{
		OrgID:             snowflake.ID(42),
		Period:            compliancedomain.PeriodMonthly,
		OverallPercentage: 80,
		Trend:             compliancedomain.TrendStable,
	}
	r := setupTestServer(t, &stubBillingService{}, &stubComplianceService{report: report})

	body := bytes.NewBufferString(`{"org_id":"42","period":"monthly"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reports/compliance", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got compliancedomain.ComplianceReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.OverallPercentage != 80 || got.Period != compliancedomain.PeriodMonthly {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestHandleComplianceReportRejectsBadInput(t *testing.T) {
	r := setupTestServer(t, &stubBillingService{}, &stubComplianceService{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing org", body: `{"period":"monthly"}`, want: http.StatusBadRequest},
		{name: "bad org id", body: `{"org_id":"abc","period":"monthly"}`, want: http.StatusBadRequest},
		{name: "bad period", body: `{"org_id":"42","period":"weekly"}`, want: http.StatusBadRequest},
		{name: "bad end date", body: `{"org_id":"42","period":"monthly","end_date":"yesterday"}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/reports/compliance", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleComplianceReportUnknownOrganization(t *testing.T) {
	r := setupTestServer(t, &stubBillingService{}, &stubComplianceService{err: orgdomain.ErrOrganizationNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/reports/compliance", bytes.NewBufferString(`{"org_id":"42","period":"monthly"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
