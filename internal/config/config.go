// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// environment first, so CONFIG_PATH and every env override can live there.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// ContentPath points at a YAML file with sponsors, judges, prizes,
	// FAQ and ideas. Empty means the built-in content.
	ContentPath string `yaml:"content_path" env:"CONTENT_PATH"`

	HTTPServer   `yaml:"http_server"`
	Registration `yaml:"registration"`
	RateLimit    `yaml:"rate_limit"`
	Newsletter   `yaml:"newsletter"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr         string        `yaml:"address"       env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"HTTP_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"HTTP_IDLE_TIMEOUT"  env-default:"60s"`
}

// Registration configures the in-memory wizard sessions.
type Registration struct {
	SessionTTL      time.Duration `yaml:"session_ttl"      env:"REGISTRATION_SESSION_TTL"      env-default:"30m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"REGISTRATION_CLEANUP_INTERVAL" env-default:"10m"`
}

// RateLimit caps form writes per client IP.
type RateLimit struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// Newsletter configures the subscribe stub.
type Newsletter struct {
	Delay time.Duration `yaml:"delay" env:"NEWSLETTER_DELAY" env-default:"1s"`
}

// MustLoad reads, validates, and returns the application config. It exits
// the process on failure, so callers never see an invalid config.
func MustLoad() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("cannot read .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies env overrides and defaults,
// and checks the values that cleanenv cannot.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("rate_limit: rps and burst must be positive, got %v/%d",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	if cfg.Registration.SessionTTL <= 0 {
		return nil, fmt.Errorf("registration: session_ttl must be positive, got %s", cfg.Registration.SessionTTL)
	}

	return &cfg, nil
}
