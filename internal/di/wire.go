//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/config"
	"github.com/Reyzen1/aicrypto-data-analysis/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCatalogCache,
		ProvideMarketSource,
		ProvideThrottle,

		// Services
		ProvideSession,
		ProvideCatalogLoader,

		// Use cases and delivery
		ProvideDashboard,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
