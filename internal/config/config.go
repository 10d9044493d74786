// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

// Package config loads and validates application configuration via Koanf v2
// with layered sources (highest priority wins):
//
//   - Environment variables (SERVER_PORT, ENGINE_TRAILING_MONTHS, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// The engine guardrails (non-MRR multiplier cap, projection sanity cap and
// clamp ratio) live here as configuration rather than constants: they are
// empirically chosen values pending business-owner review, and changing them
// must be a deliberate configuration act, not a code edit.
package config

import "time"

// Config is the root configuration for the StudioPulse server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Engine   EngineConfig   `koanf:"engine"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path; ":memory:" runs fully in memory.
	Path string `koanf:"path" validate:"required"`

	// Threads limits DuckDB worker threads; 0 uses all CPUs.
	Threads int `koanf:"threads" validate:"min=0"`

	// MaxMemory is passed through to DuckDB (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// CacheTTL is how long aggregate responses are served from cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RateLimit is requests per minute per client IP.
	RateLimit int `koanf:"rate_limit" validate:"min=1"`

	// CORSOrigins lists allowed origins for the dashboard frontend.
	CORSOrigins []string `koanf:"cors_origins"`
}

// EngineConfig holds the aggregation engine's windows and guardrails.
type EngineConfig struct {
	// TrailingMonths is the churn table depth in completed months.
	TrailingMonths int `koanf:"trailing_months" validate:"min=1,max=36"`

	// TrendWeeks is the weekly trend table depth.
	TrendWeeks int `koanf:"trend_weeks" validate:"min=1,max=104"`

	// SurvivalHorizonMonths is how far the tenure survival curve is walked.
	SurvivalHorizonMonths int `koanf:"survival_horizon_months" validate:"min=6,max=60"`

	// GrowthWindowMonths is the trailing window for the MRR growth estimate.
	GrowthWindowMonths int `koanf:"growth_window_months" validate:"min=2,max=24"`

	// CohortMaturityDays is the age at which an acquisition cohort counts
	// as complete for average-conversion reporting.
	CohortMaturityDays int `koanf:"cohort_maturity_days" validate:"min=1"`

	// PoolTrailingWeeks is the depth of the conversion pool tables and the
	// lag-statistics window.
	PoolTrailingWeeks int `koanf:"pool_trailing_weeks" validate:"min=1,max=52"`

	// NonMRRMultiplierCap bounds the prior-year actual/estimate ratio.
	// Empirically chosen guardrail; flagged for business-owner review.
	NonMRRMultiplierCap float64 `koanf:"non_mrr_multiplier_cap" validate:"min=1"`

	// ProjectionSanityCapRatio triggers the projection clamp when the raw
	// projection exceeds this multiple of prior-year actual revenue.
	ProjectionSanityCapRatio float64 `koanf:"projection_sanity_cap_ratio" validate:"min=1"`

	// ProjectionClampRatio is what a clamped projection is set to, as a
	// multiple of prior-year actual revenue (1.3 = assume at most 30% growth).
	ProjectionClampRatio float64 `koanf:"projection_clamp_ratio" validate:"min=1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all default values. Defaults are applied
// first, then overridden by config file and env vars.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8632,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "data/studiopulse.db",
			Threads:   0,
			MaxMemory: "1GB",
		},
		API: APIConfig{
			CacheTTL:    5 * time.Minute,
			RateLimit:   300,
			CORSOrigins: []string{"*"},
		},
		Engine: EngineConfig{
			TrailingMonths:           6,
			TrendWeeks:               12,
			SurvivalHorizonMonths:    24,
			GrowthWindowMonths:       6,
			CohortMaturityDays:       20,
			PoolTrailingWeeks:        12,
			NonMRRMultiplierCap:      2.0,
			ProjectionSanityCapRatio: 3.0,
			ProjectionClampRatio:     1.3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
