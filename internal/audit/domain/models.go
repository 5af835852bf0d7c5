// Package domain contains the append-only audit trail model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is one immutable record of a state transition. Rows are never
// updated or deleted.
type AuditLog struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID     *snowflake.ID     `gorm:"index" json:"org_id"`
	Action    string            `gorm:"type:text;not null" json:"action"`
	TableName string            `gorm:"type:text;not null;column:table_name" json:"table_name"`
	Details   datatypes.JSONMap `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// AuditCursor marks a position in the descending (created_at, id) ordering.
type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	OrgID  snowflake.ID
	Action string
	Cursor *AuditCursor
	Limit  int
}
