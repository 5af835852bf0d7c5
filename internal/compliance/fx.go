package compliance

import (
	"github.com/conformly/conformly/internal/compliance/repository"
	"github.com/conformly/conformly/internal/compliance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("compliance.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
