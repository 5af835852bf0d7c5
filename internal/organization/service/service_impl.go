package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("organization.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	if id == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]*domain.Organization, error) {
	if limit <= 0 || limit > 250 {
		limit = 250
	}
	return s.repo.List(ctx, s.db, limit)
}
