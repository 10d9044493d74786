// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

// Package metrics provides Prometheus instrumentation for production
// observability:
//   - Record store query performance (DuckDB)
//   - Aggregation engine section timing and failures
//   - Skipped-record diagnostics (unparseable fields)
//   - Cache efficiency
//   - API endpoint latency and throughput
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Record store metrics

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Aggregation engine metrics

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of full dashboard aggregations in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SectionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_section_failures_total",
			Help: "Sections substituted with null after a recovered fault",
		},
		[]string{"section"},
	)

	SkippedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_skipped_total",
			Help: "Source records skipped for unparseable fields",
		},
		[]string{"stream", "reason"},
	)

	ProjectionClamps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "projection_clamps_total",
			Help: "Annual projections clamped by the sanity cap",
		},
	)

	// Cache metrics

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// HTTP metrics

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
