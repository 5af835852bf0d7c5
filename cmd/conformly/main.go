package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/conformly/conformly/internal/clock"
	"github.com/conformly/conformly/internal/config"
	"github.com/conformly/conformly/internal/logger"
	"github.com/conformly/conformly/internal/migration"
	"github.com/conformly/conformly/internal/scheduler"
	"github.com/conformly/conformly/internal/server"
	"github.com/conformly/conformly/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		// Functional domains
		server.Module,
		scheduler.Module,
		migration.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
