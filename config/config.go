// Package config loads the runtime configuration from POSTBOARD_ environment
// variables (and a .env file when present) and validates it.
//
// Nested keys are separated by a double underscore:
//
//	POSTBOARD_SERVER__PORT=9000      -> server.port
//	POSTBOARD_STORE__IN_MEMORY=true  -> store.in_memory
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "POSTBOARD_"

// Store drivers.
const (
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration object.
type Config struct {
	Primary Primary      `koanf:"primary" validate:"required"`
	Server  ServerConfig `koanf:"server" validate:"required"`
	Store   StoreConfig  `koanf:"store" validate:"required"`
	Log     LogConfig    `koanf:"log" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development production test"`
}

// ServerConfig holds the HTTP listener settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int    `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int    `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int    `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins" validate:"required"`
}

// StoreConfig selects the backing store. Path applies to badger, DSN to the
// SQL drivers.
type StoreConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=badger sqlite postgres"`
	Path     string `koanf:"path" validate:"required_if=Driver badger InMemory false"`
	InMemory bool   `koanf:"in_memory"`
	DSN      string `koanf:"dsn" validate:"required_unless=Driver badger"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
}

// Default returns the configuration used for every key the environment
// leaves unset.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			CORSAllowedOrigins: "*",
		},
		Store: StoreConfig{
			Driver: DriverBadger,
			Path:   "data/postboard.db",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads POSTBOARD_ variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// AllowedOrigins splits the comma separated origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(s.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(s.IdleTimeout) * time.Second
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == "development"
}
