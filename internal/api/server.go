// Package api provides the HTTP API server and handlers for the cocktail application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/ratelimit"
	"github.com/cocktailapp/cocktail-server/internal/service"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

// Services groups the business services used by handlers.
type Services struct {
	Accounts  *service.AccountService
	Inventory *service.InventoryService
	Cocktails *service.CocktailService
	Comments  *service.CommentService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	metrics     *metrics.Metrics
	authLimiter *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// A nil metrics disables /metrics and request instrumentation; a nil limiter disables rate limiting.
func NewServer(st store.Store, services *Services, m *metrics.Metrics, authLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		store:       st,
		services:    services,
		metrics:     m,
		authLimiter: authLimiter,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Cocktail API", "1.0.0")
	humaConfig.Info.Description = "Gestion d'inventaire d'ingrédients et recherche de cocktails"
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the underlying huma API.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack. Must run before any route is registered.
func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	if s.metrics != nil {
		s.router.Use(s.metrics.InstrumentHandler)
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if s.authLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.authLimiter, "/auth/", s.logger))
	}
	s.router.Use(authMiddleware(s.services.Accounts, s.logger))
}

// registerRoutes configures all HTTP routes.
func (s *Server) registerRoutes() {
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerAccountRoutes()
	s.registerInventoryRoutes()
	s.registerCocktailRoutes()
	s.registerCommentRoutes()
}

// bearerSecurity marks an operation as requiring a bearer token in the OpenAPI document.
var bearerSecurity = []map[string][]string{{"bearer": {}}}
