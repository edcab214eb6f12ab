package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/infrastructure/di"
	"github.com/Emmrex1/MusicApp/interfaces/http/rest/handlers"
	"github.com/Emmrex1/MusicApp/interfaces/http/rest/middleware"
	pkgauth "github.com/Emmrex1/MusicApp/pkg/auth"
)

// newBaseRouter wires the middleware stack shared by all three
// services.
func newBaseRouter(logger *zap.Logger, enableCORS bool) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(logger))

	if enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", healthCheck)

	return router
}

// CatalogRouter configures the query service's HTTP surface.
type CatalogRouter struct {
	container *di.Container
}

// NewCatalogRouter creates a new catalog router.
func NewCatalogRouter(container *di.Container) *CatalogRouter {
	return &CatalogRouter{container: container}
}

// Setup configures all routes and middleware.
func (rt *CatalogRouter) Setup() http.Handler {
	c := rt.container
	router := newBaseRouter(c.Logger, c.Config.EnableCORS)

	router.Get("/ready", readinessCheck(c))

	catalogHandler := handlers.NewCatalogHandler(c.ListAlbums, c.ListSongs, c.AlbumSongs, c.GetSong, c.Logger)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/albums", catalogHandler.ListAlbums)
		r.Get("/albums/{albumID}/songs", catalogHandler.GetAlbumSongs)
		r.Get("/songs", catalogHandler.ListSongs)
		r.Get("/songs/{songID}", catalogHandler.GetSong)
	})

	return router
}

// AdminRouter configures the mutation service's HTTP surface. Every
// route is bearer-authenticated and admin-role gated; the gate runs
// before any store or cache access.
type AdminRouter struct {
	container *di.Container
}

// NewAdminRouter creates a new admin router.
func NewAdminRouter(container *di.Container) *AdminRouter {
	return &AdminRouter{container: container}
}

// Setup configures all routes and middleware.
func (rt *AdminRouter) Setup() http.Handler {
	c := rt.container
	router := newBaseRouter(c.Logger, c.Config.EnableCORS)

	router.Get("/ready", readinessCheck(c))

	adminHandler := handlers.NewAdminHandler(c.CreateAlbum, c.CreateSong, c.SetSongThumbnail, c.DeleteAlbum, c.DeleteSong, c.Logger)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(c.JWT))
		r.Use(middleware.RequireAdmin())

		r.Post("/albums", adminHandler.CreateAlbum)
		r.Delete("/albums/{albumID}", adminHandler.DeleteAlbum)
		r.Post("/songs", adminHandler.CreateSong)
		r.Put("/songs/{songID}/thumbnail", adminHandler.SetSongThumbnail)
		r.Delete("/songs/{songID}", adminHandler.DeleteSong)
	})

	return router
}

// AuthRouter configures the account service's HTTP surface.
type AuthRouter struct {
	container *di.Container
}

// NewAuthRouter creates a new auth router.
func NewAuthRouter(container *di.Container) *AuthRouter {
	return &AuthRouter{container: container}
}

// Setup configures all routes and middleware.
func (rt *AuthRouter) Setup() http.Handler {
	c := rt.container
	router := newBaseRouter(c.Logger, c.Config.EnableCORS)

	authHandler := handlers.NewAuthHandler(c.UserService, c.Logger)
	credentialLimiter := pkgauth.NewIPRateLimiter(20)
	router.Route("/api/v1/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(credentialLimiter))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(c.JWT))
			r.Get("/me", authHandler.Profile)
		})
	})

	return router
}

// healthCheck handles health check requests.
func healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready only when the durable store answers.
// The cache is deliberately not part of readiness: a cache outage
// degrades latency, never availability.
func readinessCheck(c *di.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := c.DB.PingContext(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"store unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
