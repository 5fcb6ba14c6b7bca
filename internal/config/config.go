// Package config loads service settings from .env, the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is passed explicitly to every constructor that needs settings.
type Config struct {
	HTTP      HTTPConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Solver    SolverConfig
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level       string
	Development bool
}

type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

type SolverConfig struct {
	MaxComponents int
}

const DefaultServiceName = "electrician-pro-api"

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// New returns a viper instance with defaults and environment bindings.
// Keys map to environment variables with dots replaced by underscores, e.g.
// http.addr -> HTTP_ADDR.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("otel.service_name", DefaultServiceName)
	v.SetDefault("solver.max_components", 20)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads an optional config file into v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     v.GetBool("telemetry.enabled"),
			ServiceName: v.GetString("otel.service_name"),
		},
		Solver: SolverConfig{
			MaxComponents: v.GetInt("solver.max_components"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr must not be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("http.shutdown_timeout must be positive, got %s", c.HTTP.ShutdownTimeout)
	}
	if c.Solver.MaxComponents <= 0 {
		return fmt.Errorf("solver.max_components must be positive, got %d", c.Solver.MaxComponents)
	}
	if c.Telemetry.ServiceName == "" {
		return errors.New("otel.service_name must not be empty")
	}
	return nil
}

// Default returns the built-in settings, ignoring the environment.
func Default() Config {
	return Config{
		HTTP:      HTTPConfig{Addr: ":8080", ShutdownTimeout: 5 * time.Second},
		Log:       LogConfig{Level: "info"},
		Telemetry: TelemetryConfig{ServiceName: DefaultServiceName},
		Solver:    SolverConfig{MaxComponents: 20},
	}
}
