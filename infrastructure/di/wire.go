//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"opencut-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideConfigWatcher,
	ProvideDomainConfig,
	ProvideTimelineRepository,
	ProvideSnapshotStore,
	ProvideEventBus,
	ProvideCollector,
	ProvideEditorService,
	ProvideThumbnailProvider,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container. The cleanup
// function releases infrastructure resources.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
