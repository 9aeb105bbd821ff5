package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/slot-inventory/internal/inventory"
	"github.com/eugenenazirov/slot-inventory/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	LogLevel             string

	// DefaultLayout is used for inventories created without an explicit layout.
	DefaultLayout storage.Layout
	Limits        storage.Limits
	// Seed lists inventories created at start-up.
	Seed []SeedInventory
}

// SeedInventory is an inventory created when the application starts.
type SeedInventory struct {
	Name   string
	Layout storage.Layout
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	LogLevel             string        `yaml:"log_level"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Inventory            yamlLayout    `yaml:"inventory"`
	Limits               yamlLimits    `yaml:"limits"`
	Seed                 []yamlSeed    `yaml:"seed"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlLayout struct {
	Kind     string `yaml:"kind"`
	Slots    int    `yaml:"slots"`
	Capacity int    `yaml:"capacity"`
}

type yamlLimits struct {
	MaxSlots      int `yaml:"max_slots"`
	MaxCapacity   int `yaml:"max_capacity"`
	MaxStackUnits int `yaml:"max_stack_units"`
}

type yamlSeed struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Slots    int    `yaml:"slots"`
	Capacity int    `yaml:"capacity"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	Kind           *string
	Slots          *int
	Capacity       *int
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		LogLevel:             defaultLogLevel,
		DefaultLayout:        storage.DefaultLayout(),
		Limits:               storage.DefaultLimits(),
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	durations := []struct {
		raw    string
		target *time.Duration
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", d.raw, err)
		}
		*d.target = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	layout, err := mergeLayout(cfg.DefaultLayout, yamlCfg.Inventory)
	if err != nil {
		return err
	}
	cfg.DefaultLayout = layout

	if yamlCfg.Limits.MaxSlots > 0 {
		cfg.Limits.MaxSlots = yamlCfg.Limits.MaxSlots
	}
	if yamlCfg.Limits.MaxCapacity > 0 {
		cfg.Limits.MaxCapacity = yamlCfg.Limits.MaxCapacity
	}
	if yamlCfg.Limits.MaxStackUnits > 0 {
		cfg.Limits.MaxStackUnits = yamlCfg.Limits.MaxStackUnits
	}

	for _, seed := range yamlCfg.Seed {
		layout, err := mergeLayout(cfg.DefaultLayout, yamlLayout{Kind: seed.Kind, Slots: seed.Slots, Capacity: seed.Capacity})
		if err != nil {
			return fmt.Errorf("seed %q: %w", seed.Name, err)
		}
		cfg.Seed = append(cfg.Seed, SeedInventory{Name: seed.Name, Layout: layout})
	}

	return nil
}

// mergeLayout fills base with the fields set in the YAML layout.
func mergeLayout(base storage.Layout, l yamlLayout) (storage.Layout, error) {
	if l.Kind != "" {
		kind, err := inventory.ParseKind(l.Kind)
		if err != nil {
			return storage.Layout{}, err
		}
		base.Kind = kind
	}
	if l.Slots > 0 {
		base.Slots = l.Slots
	}
	if l.Capacity > 0 {
		base.Capacity = l.Capacity
	}
	return base, nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if kind := strings.TrimSpace(os.Getenv("INVENTORY_KIND")); kind != "" {
		parsed, err := inventory.ParseKind(kind)
		if err != nil {
			return fmt.Errorf("INVENTORY_KIND: %w", err)
		}
		cfg.DefaultLayout.Kind = parsed
	}

	if slots := strings.TrimSpace(os.Getenv("INVENTORY_SLOTS")); slots != "" {
		value, err := parsePositiveInt(slots)
		if err != nil {
			return fmt.Errorf("INVENTORY_SLOTS: %w", err)
		}
		cfg.DefaultLayout.Slots = value
	}

	if capacity := strings.TrimSpace(os.Getenv("INVENTORY_CAPACITY")); capacity != "" {
		value, err := parsePositiveInt(capacity)
		if err != nil {
			return fmt.Errorf("INVENTORY_CAPACITY: %w", err)
		}
		cfg.DefaultLayout.Capacity = value
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.Kind != nil && *overrides.Kind != "" {
		kind, err := inventory.ParseKind(*overrides.Kind)
		if err != nil {
			return fmt.Errorf("parse kind: %w", err)
		}
		cfg.DefaultLayout.Kind = kind
	}

	if overrides.Slots != nil && *overrides.Slots > 0 {
		cfg.DefaultLayout.Slots = *overrides.Slots
	}

	if overrides.Capacity != nil && *overrides.Capacity > 0 {
		cfg.DefaultLayout.Capacity = *overrides.Capacity
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.Limits.MaxSlots <= 0 || cfg.Limits.MaxCapacity <= 0 || cfg.Limits.MaxStackUnits <= 0 {
		return fmt.Errorf("layout limits must be positive")
	}
	if err := cfg.Limits.Validate(cfg.DefaultLayout); err != nil {
		return fmt.Errorf("default inventory: %w", err)
	}
	for _, seed := range cfg.Seed {
		if err := cfg.Limits.Validate(seed.Layout); err != nil {
			return fmt.Errorf("seed %q: %w", seed.Name, err)
		}
	}
	return nil
}

// parsePositiveInt parses a strictly positive integer.
func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("value must be positive, got %d", value)
	}
	return value, nil
}
