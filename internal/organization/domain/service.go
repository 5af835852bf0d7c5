package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*Organization, error)
	List(ctx context.Context, limit int) ([]*Organization, error)
}

var (
	ErrOrganizationNotFound = errors.New("organization_not_found")
	ErrInvalidOrganization  = errors.New("invalid_organization")
)
