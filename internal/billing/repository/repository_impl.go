package repository

import (
	"context"

	"github.com/conformly/conformly/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertLog(ctx context.Context, db *gorm.DB, entry *domain.WebhookEventLog) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListLogs(ctx context.Context, db *gorm.DB, filter domain.ListWebhookLogFilter) ([]*domain.WebhookEventLog, error) {
	var logs []*domain.WebhookEventLog
	stmt := db.WithContext(ctx).Model(&domain.WebhookEventLog{})

	if filter.OrgID != 0 {
		stmt = stmt.Where("org_id = ?", filter.OrgID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	if err := stmt.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
