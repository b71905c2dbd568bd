package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/linguasign/certiq/internal/clock"
	"github.com/linguasign/certiq/internal/config"
	"github.com/linguasign/certiq/internal/logger"
	"github.com/linguasign/certiq/internal/migration"
	"github.com/linguasign/certiq/internal/server"
	"github.com/linguasign/certiq/pkg/db"
	"github.com/linguasign/certiq/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		telemetry.Module,
		migration.Module,

		// Quote engine and HTTP surface
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
