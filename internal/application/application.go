package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/slot-inventory/internal/api"
	"github.com/eugenenazirov/slot-inventory/internal/config"
	"github.com/eugenenazirov/slot-inventory/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage(storage.WithLimits(cfg.Limits))
	for _, seed := range cfg.Seed {
		summary, err := store.Create(seed.Name, seed.Layout)
		if err != nil {
			return nil, fmt.Errorf("failed to create seed inventory %q: %w", seed.Name, err)
		}
		logger.Info("seed inventory created",
			zap.String("inventory", summary.ID),
			zap.String("name", summary.Name),
			zap.Stringer("kind", summary.Layout.Kind),
			zap.Int("slots", summary.Layout.Slots),
			zap.Int("capacity", summary.Layout.Capacity),
		)
	}

	handler := api.NewHandler(store,
		api.WithDefaultLayout(cfg.DefaultLayout),
		api.WithLogger(logger),
	)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage: store,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler routes API requests and answers "/" with a short index of
// the available endpoints.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service":   "inventoryd",
			"endpoints": endpoints,
		})
	}))
	return mux
}

var endpoints = []string{
	"GET /api/health",
	"GET /api/inventories",
	"POST /api/inventories",
	"GET /api/inventories/{id}",
	"DELETE /api/inventories/{id}",
	"POST /api/inventories/{id}/items",
	"GET /api/inventories/{id}/items/{item}",
	"GET /api/inventories/{id}/placement",
	"GET /api/inventories/{id}/slots/{index}",
	"PUT /api/inventories/{id}/slots/{index}",
	"POST /api/inventories/{id}/slots/{index}/take",
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
