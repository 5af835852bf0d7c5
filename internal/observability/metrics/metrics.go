// Package metrics exposes prometheus counters for webhook and report activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Metrics struct {
	webhookEvents     *prometheus.CounterVec
	complianceReports *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		webhookEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conformly_webhook_events_total",
			Help: "Webhook deliveries by event type and processing outcome.",
		}, []string{"event_type", "status"}),
		complianceReports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conformly_compliance_reports_total",
			Help: "Compliance report runs by period and outcome.",
		}, []string{"period", "status"}),
	}
}

func (m *Metrics) RecordWebhookEvent(eventType string, status string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, status).Inc()
}

func (m *Metrics) RecordComplianceReport(period string, status string) {
	if m == nil {
		return
	}
	m.complianceReports.WithLabelValues(period, status).Inc()
}

var Module = fx.Module("observability.metrics",
	fx.Provide(New),
)
