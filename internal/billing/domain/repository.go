package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertLog(ctx context.Context, db *gorm.DB, entry *WebhookEventLog) error
	ListLogs(ctx context.Context, db *gorm.DB, filter ListWebhookLogFilter) ([]*WebhookEventLog, error)
}
