package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/assistant"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/config"
	"github.com/smallbiznis/tipfolio/internal/importer"
	"github.com/smallbiznis/tipfolio/internal/migration"
	"github.com/smallbiznis/tipfolio/internal/observability"
	"github.com/smallbiznis/tipfolio/internal/projection"
	"github.com/smallbiznis/tipfolio/internal/server"
	"github.com/smallbiznis/tipfolio/internal/stats"
	"github.com/smallbiznis/tipfolio/internal/subscription"
	"github.com/smallbiznis/tipfolio/internal/tip"
	"github.com/smallbiznis/tipfolio/internal/user"
	"github.com/smallbiznis/tipfolio/pkg/db"
	"github.com/smallbiznis/tipfolio/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		user.Module,
		tip.Module,
		importer.Module,
		stats.Module,
		projection.Module,
		assistant.Module,
		subscription.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
