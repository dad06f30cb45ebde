package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/crestline/irportal/internal/config"
	"github.com/crestline/irportal/internal/migration"
	"github.com/crestline/irportal/internal/seed"
	"github.com/crestline/irportal/internal/server"
	"github.com/crestline/irportal/pkg/db"
	"github.com/crestline/irportal/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		seed.Module,
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
