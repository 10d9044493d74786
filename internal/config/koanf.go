// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/studiopulse/config.yaml",
	"/etc/studiopulse/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefixes maps environment variable prefixes onto config sections. Only
// prefixed variables are considered, so unrelated environment noise never
// lands in the config tree.
var envPrefixes = []string{"SERVER_", "DATABASE_", "API_", "ENGINE_", "LOG_"}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// SERVER_PORT -> server.port, ENGINE_TRAILING_MONTHS -> engine.trailing_months
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
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

// findConfigFile returns the config file path to load, or "" when none
// exists. CONFIG_PATH takes precedence over the search paths.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps a recognized environment variable onto its koanf path.
// LOG_ vars map into the logging section; other prefixes map onto the
// section of the same name. Unrecognized variables map to "" and are ignored.
func envTransform(key string) string {
	for _, prefix := range envPrefixes {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		section := strings.ToLower(strings.TrimSuffix(prefix, "_"))
		if section == "log" {
			section = "logging"
		}
		rest := strings.ToLower(strings.TrimPrefix(key, prefix))
		return section + "." + rest
	}
	return ""
}
