package audit

import (
	"github.com/conformly/conformly/internal/audit/repository"
	"github.com/conformly/conformly/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
