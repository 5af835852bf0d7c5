// Package domain contains the compliance record models and report structures.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TrainingRecord tracks a completed SSM/PSI training with a validity deadline.
type TrainingRecord struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID `gorm:"not null;index" json:"org_id"`
	EmployeeName string       `gorm:"type:text;not null" json:"employee_name"`
	Title        string       `gorm:"type:text;not null" json:"title"`
	ExpiryDate   *time.Time   `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TrainingRecord) TableName() string { return "training_records" }

// MedicalExamination tracks an occupational medicine exam.
type MedicalExamination struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID `gorm:"not null;index" json:"org_id"`
	EmployeeName string       `gorm:"type:text;not null" json:"employee_name"`
	ExamType     string       `gorm:"type:text;not null" json:"exam_type"`
	ExpiryDate   *time.Time   `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (MedicalExamination) TableName() string { return "medical_examinations" }

// EquipmentRecord tracks fire-safety equipment and its next inspection deadline.
type EquipmentRecord struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"org_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	Location   string       `gorm:"type:text" json:"location"`
	ExpiryDate *time.Time   `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (EquipmentRecord) TableName() string { return "equipment_records" }

// GeneratedDocument is a produced compliance document. Documents have no
// natural expiry; freshness is judged by age bands instead.
type GeneratedDocument struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID `gorm:"not null;index" json:"org_id"`
	Title        string       `gorm:"type:text;not null" json:"title"`
	DocumentType string       `gorm:"type:text;not null" json:"document_type"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (GeneratedDocument) TableName() string { return "generated_documents" }

// Categories.
const (
	CategoryTraining  = "training"
	CategoryMedical   = "medical"
	CategoryEquipment = "equipment"
	CategoryDocuments = "documents"
)

// ItemStatus classifies one record at read time.
type ItemStatus string

const (
	ItemValid    ItemStatus = "valid"
	ItemExpiring ItemStatus = "expiring"
	ItemExpired  ItemStatus = "expired"
)

// Period selects the reporting lookback.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
)

// Trend compares the overall percentage against the preceding period.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// CategoryBreakdown is the per-category slice of the report.
type CategoryBreakdown struct {
	Category             string `json:"category"`
	TotalCount           int    `json:"total_count"`
	CompliantCount       int    `json:"compliant_count"`
	ExpiringCount        int    `json:"expiring_count"`
	ExpiredCount         int    `json:"expired_count"`
	CompliancePercentage int    `json:"compliance_percentage"`
}

// CriticalAlert is one record at or past the 7-day urgency threshold.
type CriticalAlert struct {
	Category        string     `json:"category"`
	RecordID        string     `json:"record_id"`
	Title           string     `json:"title"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
}

// ComplianceReport is derived on each run and not persisted.
type ComplianceReport struct {
	OrgID              snowflake.ID        `json:"org_id"`
	Period             Period              `json:"period"`
	WindowStart        time.Time           `json:"window_start"`
	WindowEnd          time.Time           `json:"window_end"`
	OverallPercentage  int                 `json:"overall_percentage"`
	PreviousPercentage int                 `json:"previous_percentage"`
	Trend              Trend               `json:"trend"`
	Categories         []CategoryBreakdown `json:"categories"`
	CriticalAlerts     []CriticalAlert     `json:"critical_alerts"`
	GeneratedAt        time.Time           `json:"generated_at"`
}
