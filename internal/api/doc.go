// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

// Package api provides the HTTP surface: the aggregate dashboard endpoint,
// per-section endpoints served from the same cached aggregation, health
// probes, and Prometheus metrics. Routing uses chi; responses are wrapped in
// the standard envelope with query-time and cache metadata.
package api
