package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository reads compliance records created on or before a window end.
// The aggregator never mutates these tables.
type Repository interface {
	ListTraining(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]TrainingRecord, error)
	ListMedical(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]MedicalExamination, error)
	ListEquipment(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]EquipmentRecord, error)
	ListDocuments(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]GeneratedDocument, error)
}
