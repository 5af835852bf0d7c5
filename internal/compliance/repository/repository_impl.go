package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/compliance/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListTraining(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]domain.TrainingRecord, error) {
	var records []domain.TrainingRecord
	err := db.WithContext(ctx).
		Where("org_id = ? AND created_at <= ?", orgID, before).
		Find(&records).Error
	return records, err
}

func (r *repo) ListMedical(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]domain.MedicalExamination, error) {
	var records []domain.MedicalExamination
	err := db.WithContext(ctx).
		Where("org_id = ? AND created_at <= ?", orgID, before).
		Find(&records).Error
	return records, err
}

func (r *repo) ListEquipment(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]domain.EquipmentRecord, error) {
	var records []domain.EquipmentRecord
	err := db.WithContext(ctx).
		Where("org_id = ? AND created_at <= ?", orgID, before).
		Find(&records).Error
	return records, err
}

func (r *repo) ListDocuments(ctx context.Context, db *gorm.DB, orgID snowflake.ID, before time.Time) ([]domain.GeneratedDocument, error) {
	var records []domain.GeneratedDocument
	err := db.WithContext(ctx).
		Where("org_id = ? AND created_at <= ?", orgID, before).
		Find(&records).Error
	return records, err
}
