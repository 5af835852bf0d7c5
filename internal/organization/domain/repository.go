package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	FindByStripeSubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*Organization, error)
	List(ctx context.Context, db *gorm.DB, limit int) ([]*Organization, error)
	UpdateSubscriptionFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
