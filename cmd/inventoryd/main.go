package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/slot-inventory/internal/application"
	"github.com/eugenenazirov/slot-inventory/internal/config"
	"github.com/eugenenazirov/slot-inventory/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("inventoryd", "Slot inventory service - stores items in fixed-size slot containers")
	overrides := registerFlags(kingpinApp)

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	cfg, err := config.Load(overrides.resolve())
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// flagValues holds raw flag values; unset flags keep their sentinel defaults
// so they do not override lower-precedence sources.
type flagValues struct {
	configFile     *string
	port           *string
	logLevel       *string
	kind           *string
	slots          *int
	capacity       *int
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func registerFlags(app *kingpin.Application) *flagValues {
	return &flagValues{
		configFile:     app.Flag("config", "Path to YAML configuration file").String(),
		port:           app.Flag("port", "HTTP port exposed by the service").String(),
		logLevel:       app.Flag("log-level", "Log level (debug, info, warn, error)").String(),
		kind:           app.Flag("kind", "Default slot kind for new inventories (simple, stack, lazy-stack)").String(),
		slots:          app.Flag("slots", "Default number of slots for new inventories").Default("0").Int(),
		capacity:       app.Flag("capacity", "Default slot capacity for new stack inventories").Default("0").Int(),
		rateLimitRPS:   app.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").Default("-1").Float64(),
		rateLimitBurst: app.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int(),
	}
}

func (f *flagValues) resolve() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: *f.configFile,
	}
	if *f.port != "" {
		overrides.Port = f.port
	}
	if *f.logLevel != "" {
		overrides.LogLevel = f.logLevel
	}
	if *f.kind != "" {
		overrides.Kind = f.kind
	}
	if *f.slots > 0 {
		overrides.Slots = f.slots
	}
	if *f.capacity > 0 {
		overrides.Capacity = f.capacity
	}
	if *f.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = f.rateLimitRPS
	}
	if *f.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = f.rateLimitBurst
	}
	return overrides
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
