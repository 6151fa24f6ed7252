package api

import (
	"net/http"

	"slipstream/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface defines the simulation engine methods used by the API.
// This interface enables mocking for tests without spinning up the tick loop.
// Keep this minimal - only include methods the API layer actually calls.
type EngineInterface interface {
	// GetSnapshot returns the latest lock-free immutable snapshot
	GetSnapshot() *sim.WorldSnapshot
	// GetEntity returns an entity by ID (may be nil)
	GetEntity(id string) *sim.Entity
	// AddPlayer spawns a player entity
	AddPlayer(name string, opts sim.EntityOptions) (*sim.Entity, error)
	// AddEnemy spawns an enemy entity
	AddEnemy(name string, opts sim.EntityOptions) (*sim.Entity, error)
	// AddTurret spawns a turret aimed at targetID
	AddTurret(name string, opts sim.EntityOptions, targetID string) (*sim.Turret, error)
	// QueueIntents merges intents for an entity at the next tick boundary
	QueueIntents(entityID string, in sim.Intents)
	// ThrowGrenade arms a grenade from an entity's hand anchor
	ThrowGrenade(ownerID string, dir sim.Vec3) error
	// GetEventLogStats returns event log counters
	GetEventLogStats() map[string]interface{}
	// GetLimits returns the active resource limits
	GetLimits() sim.ResourceLimits
}

// FrameRenderer renders a snapshot to an encoded PNG for the debug view.
type FrameRenderer interface {
	RenderPNG(snap *sim.WorldSnapshot) ([]byte, error)
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Engine: stubEngine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the simulation engine (required)
	Engine EngineInterface

	// Frame is an optional renderer backing GET /api/frame.png.
	// If nil, the endpoint returns 404.
	Frame FrameRenderer

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses the default local-dev origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	engine EngineInterface
	frame  FrameRenderer
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects:
//   - No goroutines are started
//   - No network listeners are opened
//   - No background workers are launched
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		engine: cfg.Engine,
		frame:  cfg.Frame,
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Simulation state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Get("/archetypes", h.handleGetArchetypes)
		r.Get("/frame.png", h.handleGetFrame)

		// Spawning
		r.Post("/spawn/player", h.handleSpawnPlayer)
		r.Post("/spawn/enemy", h.handleSpawnEnemy)
		r.Post("/spawn/turret", h.handleSpawnTurret)

		// Input
		r.Post("/intent", h.handleIntent)
		r.Post("/dilation/increase", h.handleDilationIncrease)
		r.Post("/dilation/decrease", h.handleDilationDecrease)
		r.Post("/grenade", h.handleThrowGrenade)
	})

	// Default route
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/state", http.StatusFound)
	})

	return r
}
