package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/pkg/db/pagination"
)

type ListAuditLogRequest struct {
	pagination.Pagination
	OrgID  snowflake.ID
	Action string
}

type ListAuditLogResponse struct {
	pagination.PageInfo
	AuditLogs []AuditLog `json:"audit_logs"`
}

type Service interface {
	// Record appends one immutable entry. Callers treat failures as
	// best-effort: the error is returned for visibility but must not abort
	// the primary operation.
	Record(ctx context.Context, orgID *snowflake.ID, action string, tableName string, details map[string]any) error
	List(ctx context.Context, req ListAuditLogRequest) (ListAuditLogResponse, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidPageToken    = errors.New("invalid_page_token")
	ErrInvalidAction       = errors.New("invalid_action")
)
