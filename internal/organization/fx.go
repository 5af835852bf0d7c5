package organization

import (
	"github.com/conformly/conformly/internal/organization/repository"
	"github.com/conformly/conformly/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
