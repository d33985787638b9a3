// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 8085 {
		t.Errorf("default port = %d, want 8085", cfg.Server.Port)
	}
	if cfg.Training.DefaultAlgorithm != "gradient_boosted_trees" {
		t.Errorf("default algorithm = %q", cfg.Training.DefaultAlgorithm)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray config.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := defaultConfig()
	if cfg.Server.Host != want.Server.Host || cfg.Server.Port != want.Server.Port {
		t.Errorf("server = %+v, want defaults %+v", cfg.Server, want.Server)
	}
	if cfg.Store.GCInterval != 5*time.Minute {
		t.Errorf("gc interval = %s, want 5m", cfg.Store.GCInterval)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("cors origins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
server:
  port: 9000
logging:
  level: debug
  format: console
training:
  default_algorithm: random_forest
  test_fraction: 0.3
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v, want debug/console", cfg.Logging)
	}
	if cfg.Training.DefaultAlgorithm != "random_forest" {
		t.Errorf("algorithm = %q, want random_forest", cfg.Training.DefaultAlgorithm)
	}
	if cfg.Training.TestFraction != 0.3 {
		t.Errorf("test fraction = %g, want 0.3", cfg.Training.TestFraction)
	}
	// Keys the file omits keep their defaults.
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %s, want default 30s", cfg.Server.ReadTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRAEDICTUS_SERVER_PORT", "7777")
	t.Setenv("PRAEDICTUS_TRAINING_SEED", "99")
	t.Setenv("PRAEDICTUS_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PRAEDICTUS_UNRELATED_KEY", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Training.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Training.Seed)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != wantOrigins[0] ||
		cfg.Security.CORSOrigins[1] != wantOrigins[1] {
		t.Errorf("cors origins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
}

func TestLoadConfigPathOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())

	override := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(override, []byte("server:\n  port: 6543\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, override)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 6543 {
		t.Errorf("port = %d, want 6543", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRAEDICTUS_SERVER_PORT", "99999")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted an out-of-range port")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string // substring of the expected error
	}{
		{
			name:   "port too high",
			mutate: func(c *Config) { c.Server.Port = 70000 },
			want:   "server.port",
		},
		{
			name:   "zero shutdown timeout",
			mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 },
			want:   "shutdown_timeout",
		},
		{
			name:   "negative body limit",
			mutate: func(c *Config) { c.Server.MaxBodyBytes = -1 },
			want:   "max_body_bytes",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name:   "unknown auth mode",
			mutate: func(c *Config) { c.Security.AuthMode = "basic" },
			want:   "auth_mode",
		},
		{
			name: "jwt without secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = "jwt"
				c.Security.JWTSecret = "short"
			},
			want: "jwt_secret",
		},
		{
			name:   "zero rate limit",
			mutate: func(c *Config) { c.Security.RateLimitReqs = 0 },
			want:   "rate_limit_reqs",
		},
		{
			name: "missing store path",
			mutate: func(c *Config) {
				c.Store.Path = ""
				c.Store.InMemory = false
			},
			want: "store.path",
		},
		{
			name:   "zero gc interval",
			mutate: func(c *Config) { c.Store.GCInterval = 0 },
			want:   "gc_interval",
		},
		{
			name:   "unknown algorithm",
			mutate: func(c *Config) { c.Training.DefaultAlgorithm = "svm" },
			want:   "default_algorithm",
		},
		{
			name:   "test fraction out of range",
			mutate: func(c *Config) { c.Training.TestFraction = 1 },
			want:   "test_fraction",
		},
		{
			name:   "zero top features",
			mutate: func(c *Config) { c.Training.TopFeatures = 0 },
			want:   "top_features",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() accepted invalid config")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	// Disabled rate limiting skips the rate-limit checks.
	cfg := valid()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with disabled rate limit failed: %v", err)
	}
}
