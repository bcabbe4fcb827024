//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/zappabad/pamsview/internal/app"
	"github.com/zappabad/pamsview/internal/server"
)

// InitializeServer builds the HTTP server (config, logger, datasets, scene) via Wire.
func InitializeServer() (*server.Server, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideStore,
		app.ProvideScene,
		app.ProvideFrameConfig,
		server.NewServer,
	)
	return nil, nil
}
