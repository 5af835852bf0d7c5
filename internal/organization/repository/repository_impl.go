package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/organization/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) FindByStripeSubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*domain.Organization, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return nil, domain.ErrOrganizationNotFound
	}
	var org domain.Organization
	err := db.WithContext(ctx).First(&org, "stripe_subscription_id = ?", subscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]*domain.Organization, error) {
	var orgs []*domain.Organization
	stmt := db.WithContext(ctx).Model(&domain.Organization{}).Order("created_at asc, id asc")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// UpdateSubscriptionFields overwrites the given columns unconditionally.
// Last-writer-wins: no optimistic concurrency token.
func (r *repo) UpdateSubscriptionFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	updates := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		updates[column] = value
	}
	updates["updated_at"] = time.Now().UTC()
	result := db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}
