// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/studiopulse/studiopulse/internal/analytics"
	"github.com/studiopulse/studiopulse/internal/cache"
	"github.com/studiopulse/studiopulse/internal/config"
	"github.com/studiopulse/studiopulse/internal/database"
	"github.com/studiopulse/studiopulse/internal/models"
)

// Handler holds the dependencies the HTTP endpoints need.
type Handler struct {
	db       *database.DB
	cache    *cache.Cache
	agg      *analytics.Aggregator
	cfg      *config.Config
	executor *QueryExecutor
}

// NewHandler wires a handler to the record store, response cache, and
// aggregation engine.
func NewHandler(db *database.DB, c *cache.Cache, agg *analytics.Aggregator, cfg *config.Config) *Handler {
	h := &Handler{db: db, cache: c, agg: agg, cfg: cfg}
	h.executor = NewQueryExecutor(h)
	return h
}

// Dashboard serves the full aggregate response.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.executor.Execute(w, r, "Dashboard", func(ctx context.Context) (interface{}, error) {
		return h.agg.BuildDashboard(ctx)
	})
}

// Section endpoints reuse the dashboard aggregation through the same cache
// key, so hitting /churn after /dashboard never recomputes.

// Churn serves the per-category churn tables with the survival summary.
func (h *Handler) Churn(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(d *models.Dashboard) interface{} {
		return map[string]interface{}{
			"churn":    d.Churn,
			"survival": d.Survival,
		}
	})
}

// Projection serves the annual revenue projection.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(d *models.Dashboard) interface{} { return d.Projection })
}

// Cohorts serves the acquisition cohort table.
func (h *Handler) Cohorts(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(d *models.Dashboard) interface{} { return d.Cohorts })
}

// Pool serves the conversion pool tables.
func (h *Handler) Pool(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(d *models.Dashboard) interface{} { return d.Pool })
}

// Trends serves the per-category trend tables with snapshots and pacing.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, func(d *models.Dashboard) interface{} {
		return map[string]interface{}{
			"snapshots": d.Snapshots,
			"trends":    d.Trends,
			"pacing":    d.Pacing,
		}
	})
}

// section serves one extracted view of the cached dashboard.
func (h *Handler) section(w http.ResponseWriter, r *http.Request, extract func(*models.Dashboard) interface{}) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return
	}

	start := time.Now()
	cacheKey := cache.GenerateKey("Dashboard", nil)

	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			if d, ok := cached.(*models.Dashboard); ok {
				respondJSON(w, http.StatusOK, &models.APIResponse{
					Status: "success",
					Data:   extract(d),
					Metadata: models.Metadata{
						Timestamp:   time.Now(),
						QueryTimeMS: 0,
						Cached:      true,
					},
				})
				return
			}
		}
	}

	d, err := h.agg.BuildDashboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build aggregation", err)
		return
	}
	if h.cache != nil {
		h.cache.Set(cacheKey, d)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   extract(d),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HealthLive reports process liveness. It never touches the database.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady reports readiness: the database must answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not ready", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
