package di

import (
	"context"
	"database/sql"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	chandlers "github.com/Emmrex1/MusicApp/application/commands/handlers"
	"github.com/Emmrex1/MusicApp/application/ports"
	qhandlers "github.com/Emmrex1/MusicApp/application/queries/handlers"
	"github.com/Emmrex1/MusicApp/application/services"
	"github.com/Emmrex1/MusicApp/infrastructure/cache"
	"github.com/Emmrex1/MusicApp/infrastructure/config"
	"github.com/Emmrex1/MusicApp/infrastructure/media"
	"github.com/Emmrex1/MusicApp/infrastructure/persistence/sqlite"
	"github.com/Emmrex1/MusicApp/pkg/auth"
)

// Container holds all application dependencies. It is constructed
// explicitly at startup and closed on shutdown; nothing in it is a
// package-level singleton.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB           *sql.DB
	CatalogStore ports.CatalogStore
	UserStore    ports.UserStore
	Cache        ports.Cache
	Media        ports.MediaStore
	JWT          *auth.JWTManager

	UserService *services.UserService

	ListAlbums *qhandlers.ListAlbumsHandler
	ListSongs  *qhandlers.ListSongsHandler
	AlbumSongs *qhandlers.GetAlbumSongsHandler
	GetSong    *qhandlers.GetSongHandler

	CreateAlbum      *chandlers.CreateAlbumHandler
	CreateSong       *chandlers.CreateSongHandler
	SetSongThumbnail *chandlers.SetSongThumbnailHandler
	DeleteAlbum      *chandlers.DeleteAlbumHandler
	DeleteSong       *chandlers.DeleteSongHandler
}

// Close releases the container's resources in reverse construction
// order.
func (c *Container) Close() error {
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Logger != nil {
		// Sync errors on stderr sinks are expected and ignorable.
		_ = c.Logger.Sync()
	}
	return firstErr
}

// ProvideLogger creates a new logger instance.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDB opens the durable store and ensures its schema.
func ProvideDB(cfg *config.Config) (*sql.DB, error) {
	return sqlite.Open(cfg.DatabasePath)
}

// ProvideCatalogStore creates the catalog store.
func ProvideCatalogStore(db *sql.DB, logger *zap.Logger) ports.CatalogStore {
	return sqlite.NewCatalogStore(db, logger)
}

// ProvideUserStore creates the user store.
func ProvideUserStore(db *sql.DB, logger *zap.Logger) ports.UserStore {
	return sqlite.NewUserStore(db, logger)
}

// ProvideRedisClient creates the Redis client for the shared cache
// endpoint.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ProvideCache creates the cache adapter over the Redis client.
func ProvideCache(client *redis.Client, cfg *config.Config, logger *zap.Logger) ports.Cache {
	return cache.NewRedis(client, cfg.CacheOpTimeout, logger)
}

// ProvideMediaStore creates the upload collaborator for the
// configured backend.
func ProvideMediaStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.MediaStore, error) {
	switch cfg.MediaBackend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return media.NewS3Store(awss3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.AWSRegion, cfg.S3Folder, logger), nil
	case "local":
		return media.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

// ProvideJWTManager creates the token issuer/validator shared by the
// auth and admin services.
func ProvideJWTManager(cfg *config.Config) (*auth.JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTManager(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		TokenTTL:  cfg.TokenTTL,
	})
}

// ProvideUserService creates the account service.
func ProvideUserService(users ports.UserStore, jwt *auth.JWTManager, logger *zap.Logger) *services.UserService {
	return services.NewUserService(users, jwt, logger)
}

// ProvideListAlbumsHandler creates the album listing query handler.
func ProvideListAlbumsHandler(store ports.CatalogStore, c ports.Cache, cfg *config.Config, logger *zap.Logger) *qhandlers.ListAlbumsHandler {
	return qhandlers.NewListAlbumsHandler(store, c, cfg.CacheTTL, logger)
}

// ProvideListSongsHandler creates the song listing query handler.
func ProvideListSongsHandler(store ports.CatalogStore, c ports.Cache, cfg *config.Config, logger *zap.Logger) *qhandlers.ListSongsHandler {
	return qhandlers.NewListSongsHandler(store, c, cfg.CacheTTL, logger)
}

// ProvideGetAlbumSongsHandler creates the album songs query handler.
func ProvideGetAlbumSongsHandler(store ports.CatalogStore, c ports.Cache, cfg *config.Config, logger *zap.Logger) *qhandlers.GetAlbumSongsHandler {
	return qhandlers.NewGetAlbumSongsHandler(store, c, cfg.CacheTTL, logger)
}

// ProvideGetSongHandler creates the single song query handler.
func ProvideGetSongHandler(store ports.CatalogStore, c ports.Cache, cfg *config.Config, logger *zap.Logger) *qhandlers.GetSongHandler {
	return qhandlers.NewGetSongHandler(store, c, cfg.CacheTTL, logger)
}

// ProvideCreateAlbumHandler creates the create album command handler.
func ProvideCreateAlbumHandler(store ports.CatalogStore, c ports.Cache, m ports.MediaStore, logger *zap.Logger) *chandlers.CreateAlbumHandler {
	return chandlers.NewCreateAlbumHandler(store, c, m, logger)
}

// ProvideCreateSongHandler creates the create song command handler.
func ProvideCreateSongHandler(store ports.CatalogStore, c ports.Cache, m ports.MediaStore, logger *zap.Logger) *chandlers.CreateSongHandler {
	return chandlers.NewCreateSongHandler(store, c, m, logger)
}

// ProvideSetSongThumbnailHandler creates the thumbnail command handler.
func ProvideSetSongThumbnailHandler(store ports.CatalogStore, c ports.Cache, m ports.MediaStore, logger *zap.Logger) *chandlers.SetSongThumbnailHandler {
	return chandlers.NewSetSongThumbnailHandler(store, c, m, logger)
}

// ProvideDeleteAlbumHandler creates the delete album command handler.
func ProvideDeleteAlbumHandler(store ports.CatalogStore, c ports.Cache, logger *zap.Logger) *chandlers.DeleteAlbumHandler {
	return chandlers.NewDeleteAlbumHandler(store, c, logger)
}

// ProvideDeleteSongHandler creates the delete song command handler.
func ProvideDeleteSongHandler(store ports.CatalogStore, c ports.Cache, logger *zap.Logger) *chandlers.DeleteSongHandler {
	return chandlers.NewDeleteSongHandler(store, c, logger)
}
