//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/Emmrex1/MusicApp/infrastructure/config"
)

// SuperSet is the main provider set containing all providers.
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDB,
	ProvideCatalogStore,
	ProvideUserStore,
	ProvideRedisClient,
	ProvideCache,
	ProvideMediaStore,
	ProvideJWTManager,
	ProvideUserService,
	ProvideListAlbumsHandler,
	ProvideListSongsHandler,
	ProvideGetAlbumSongsHandler,
	ProvideGetSongHandler,
	ProvideCreateAlbumHandler,
	ProvideCreateSongHandler,
	ProvideSetSongThumbnailHandler,
	ProvideDeleteAlbumHandler,
	ProvideDeleteSongHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
