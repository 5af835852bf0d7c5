package server

import (
	"context"
	"net/http"

	"github.com/conformly/conformly/internal/audit"
	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	"github.com/conformly/conformly/internal/billing"
	billingdomain "github.com/conformly/conformly/internal/billing/domain"
	"github.com/conformly/conformly/internal/compliance"
	compliancedomain "github.com/conformly/conformly/internal/compliance/domain"
	"github.com/conformly/conformly/internal/config"
	"github.com/conformly/conformly/internal/notification"
	obslogger "github.com/conformly/conformly/internal/observability/logger"
	obsmetrics "github.com/conformly/conformly/internal/observability/metrics"
	"github.com/conformly/conformly/internal/organization"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"github.com/conformly/conformly/internal/providers/email"
	"github.com/conformly/conformly/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	audit.Module,
	organization.Module,
	email.Module,
	notification.Module,
	billing.Module,
	compliance.Module,
	ratelimit.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

type Server struct {
	log           *zap.Logger
	billingSvc    billingdomain.Service
	complianceSvc compliancedomain.Service
	orgSvc        orgdomain.Service
	auditSvc      auditdomain.Service
	limiter       *ratelimit.RequestLimiter
}

type Params struct {
	fx.In

	Log           *zap.Logger
	BillingSvc    billingdomain.Service
	ComplianceSvc compliancedomain.Service
	OrgSvc        orgdomain.Service
	AuditSvc      auditdomain.Service
	Limiter       *ratelimit.RequestLimiter `optional:"true"`
}

func NewServer(p Params) *Server {
	return &Server{
		log:           p.Log.Named("server"),
		billingSvc:    p.BillingSvc,
		complianceSvc: p.ComplianceSvc,
		orgSvc:        p.OrgSvc,
		auditSvc:      p.AuditSvc,
		limiter:       p.Limiter,
	}
}

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// rateLimit gates a route on the request limiter, keyed by client address.
// Redis failures let the request through; throttling must never take the
// webhook endpoint down with it.
func (s *Server) rateLimit(allow func(context.Context, string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}
		c.Next()
	}
}

func registerRoutes(r *gin.Engine, s *Server) {
	r.POST("/api/stripe/webhook", s.rateLimit(s.limiter.AllowWebhook), s.HandleStripeWebhook)

	api := r.Group("/api")
	api.POST("/reports/compliance", s.rateLimit(s.limiter.AllowReport), s.HandleComplianceReport)
	api.GET("/organizations", s.HandleListOrganizations)
	api.GET("/organizations/:id", s.HandleGetOrganization)
	api.GET("/organizations/:id/subscription", s.HandleGetSubscription)
	api.GET("/audit-logs", s.HandleListAuditLogs)
	api.GET("/webhook-logs", s.HandleListWebhookLogs)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
