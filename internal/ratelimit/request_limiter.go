package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conformly/conformly/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyWebhook = "ratelimit:webhook:%s"
	keyReport  = "ratelimit:report:%s"
)

// RequestLimiter throttles the two public write endpoints per client address.
// A nil limiter means rate limiting is disabled and every request passes.
type RequestLimiter struct {
	bucket *TokenBucket

	webhookRate  float64
	webhookBurst int
	reportRate   float64
	reportBurst  int
}

func NewRequestLimiter(cfg config.Config) (*RequestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.WebhookRate <= 0 || limitCfg.WebhookBurst <= 0 {
		return nil, errors.New("webhook rate limit must be positive")
	}
	if limitCfg.ReportRate <= 0 || limitCfg.ReportBurst <= 0 {
		return nil, errors.New("report rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &RequestLimiter{
		bucket:       NewTokenBucket(client),
		webhookRate:  limitCfg.WebhookRate,
		webhookBurst: limitCfg.WebhookBurst,
		reportRate:   limitCfg.ReportRate,
		reportBurst:  limitCfg.ReportBurst,
	}, nil
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *RequestLimiter) AllowWebhook(ctx context.Context, clientKey string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyWebhook, strings.TrimSpace(clientKey)), l.webhookRate, l.webhookBurst)
}

func (l *RequestLimiter) AllowReport(ctx context.Context, clientKey string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyReport, strings.TrimSpace(clientKey)), l.reportRate, l.reportBurst)
}
