// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/praedictus/config.yaml",
	"/etc/praedictus/config.yml",
}

// ConfigPathEnvVar overrides the config file search entirely.
const ConfigPathEnvVar = "PRAEDICTUS_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them
// onto config keys.
const envPrefix = "PRAEDICTUS_"

// defaultConfig returns a Config with all defaults applied. These are
// loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8085,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second, // training requests can be slow
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    32 << 20, // 32MB of CSV/JSON rows
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			AuthMode:          "none",
			JWTSecret:         "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Store: StoreConfig{
			Path:       "/data/praedictus",
			InMemory:   false,
			GCInterval: 5 * time.Minute,
		},
		Training: TrainingConfig{
			DefaultAlgorithm: "gradient_boosted_trees",
			TestFraction:     0.2,
			Seed:             42,
			TopFeatures:      5,
			MaxTrainRows:     500000,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and PRAEDICTUS_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, honoring
// the PRAEDICTUS_CONFIG_PATH override, or "" if none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps PRAEDICTUS_ environment variables to koanf
// config paths. Only known keys are mapped; unknown variables are
// skipped so unrelated environment state cannot pollute the config.
//
// Examples:
//   - PRAEDICTUS_SERVER_PORT -> server.port
//   - PRAEDICTUS_TRAINING_SEED -> training.seed
//   - PRAEDICTUS_JWT_SECRET -> security.jwt_secret
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Server mappings
		"server_host":             "server.host",
		"server_port":             "server.port",
		"server_read_timeout":     "server.read_timeout",
		"server_write_timeout":    "server.write_timeout",
		"server_shutdown_timeout": "server.shutdown_timeout",
		"server_max_body_bytes":   "server.max_body_bytes",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",

		// Security mappings
		"auth_mode":          "security.auth_mode",
		"jwt_secret":         "security.jwt_secret",
		"rate_limit_reqs":    "security.rate_limit_reqs",
		"rate_limit_window":  "security.rate_limit_window",
		"disable_rate_limit": "security.rate_limit_disabled",
		"cors_origins":       "security.cors_origins",

		// Store mappings
		"store_path":        "store.path",
		"store_in_memory":   "store.in_memory",
		"store_gc_interval": "store.gc_interval",

		// Training mappings
		"training_algorithm":      "training.default_algorithm",
		"training_test_fraction":  "training.test_fraction",
		"training_seed":           "training.seed",
		"training_top_features":   "training.top_features",
		"training_max_train_rows": "training.max_train_rows",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// sliceConfigPaths lists config keys parsed as comma-separated slices
// when they arrive as strings from env vars.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		if !k.Exists(path) {
			continue
		}
		raw := k.Get(path)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
