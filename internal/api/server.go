// Package api provides the HTTP API server and handlers for the Marquee server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/marqueeapp/marquee-server/internal/catalog"
	"github.com/marqueeapp/marquee-server/internal/config"
	"github.com/marqueeapp/marquee-server/internal/ratelimit"
	"github.com/marqueeapp/marquee-server/internal/service"
	"github.com/marqueeapp/marquee-server/internal/sse"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog  *service.CatalogService
	Instance *service.InstanceService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *catalog.Store
	services   *Services
	sseHandler *sse.Handler
	sseManager *sse.Manager
	limiter    *ratelimit.KeyedRateLimiter
	router     *chi.Mux
	api        huma.API
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *catalog.Store, services *Services, sseManager *sse.Manager, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:      store,
		services:   services,
		sseHandler: sse.NewHandler(sseManager, logger),
		sseManager: sseManager,
		limiter:    ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		router:     chi.NewRouter(),
		cfg:        cfg,
		logger:     logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Marquee API", service.Version)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases per-server resources. The HTTP listener is owned by the
// caller.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.rateLimit)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerMovieRoutes()
	s.registerFilterRoutes()

	// SSE streams outside huma; it needs the raw ResponseWriter.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	// The catalog document the front-end fetches on startup.
	s.router.Get("/catalog.json", s.handleCatalogDocument)

	// Front-end assets, when configured.
	if s.cfg.Web.AssetsDir != "" {
		s.router.NotFound(s.handleStatic)
	}
}
