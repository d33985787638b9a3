// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/praedictus/internal/model"
)

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Security SecurityConfig `koanf:"security"`
	Store    StoreConfig    `koanf:"store"`
	Training TrainingConfig `koanf:"training"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SecurityConfig holds authentication, rate limiting, and CORS settings.
type SecurityConfig struct {
	// AuthMode is "none" or "jwt". With "jwt", API requests must carry
	// a bearer token signed with JWTSecret.
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// StoreConfig holds model store settings.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// TrainingConfig holds defaults applied to training requests that omit
// the corresponding fields.
type TrainingConfig struct {
	DefaultAlgorithm string  `koanf:"default_algorithm"`
	TestFraction     float64 `koanf:"test_fraction"`
	Seed             int64   `koanf:"seed"`
	TopFeatures      int     `koanf:"top_features"`
	MaxTrainRows     int     `koanf:"max_train_rows"`
}

// Validate checks the configuration for values that would cause
// failures at runtime. Error messages name the offending key and the
// accepted range so misconfiguration is actionable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	switch c.Security.AuthMode {
	case "none":
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters when auth_mode is jwt, got %d", len(c.Security.JWTSecret))
		}
	default:
		return fmt.Errorf("security.auth_mode must be none or jwt, got %q", c.Security.AuthMode)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path must be set when store.in_memory is false")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("store.gc_interval must be positive, got %s", c.Store.GCInterval)
	}

	if _, err := model.ParseAlgorithm(c.Training.DefaultAlgorithm); err != nil {
		return fmt.Errorf("training.default_algorithm: %w", err)
	}
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("training.test_fraction must be between 0 and 1 exclusive, got %g", c.Training.TestFraction)
	}
	if c.Training.TopFeatures < 1 {
		return fmt.Errorf("training.top_features must be at least 1, got %d", c.Training.TopFeatures)
	}
	if c.Training.MaxTrainRows < 1 {
		return fmt.Errorf("training.max_train_rows must be at least 1, got %d", c.Training.MaxTrainRows)
	}

	return nil
}
