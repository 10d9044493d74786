// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package api

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/studiopulse/studiopulse/internal/analytics"
	"github.com/studiopulse/studiopulse/internal/cache"
	"github.com/studiopulse/studiopulse/internal/config"
	"github.com/studiopulse/studiopulse/internal/database"
	"github.com/studiopulse/studiopulse/internal/models"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = ":memory:"
	cfg.Database.MaxMemory = "256MB"

	db, err := database.New(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	seedStore(t, db)

	agg := analytics.NewAggregator(db, &cfg.Engine)
	handler := NewHandler(db, cache.New(cfg.API.CacheTTL), agg, cfg)
	return NewRouter(handler, &cfg.API).Setup()
}

func seedStore(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	canceledAt := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	subs := []models.Subscription{
		{
			PlanName:    "Unlimited Membership",
			Category:    models.CategoryMember,
			Cadence:     models.CadencePeriodic,
			MonthlyRate: 200,
			State:       models.StateActive,
			PersonEmail: "a@x.com",
			CreatedAt:   time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			PlanName:    "Unlimited Membership",
			Category:    models.CategoryMember,
			Cadence:     models.CadencePeriodic,
			MonthlyRate: 150,
			State:       models.StateCanceled,
			PersonEmail: "b@x.com",
			CreatedAt:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			CanceledAt:  &canceledAt,
		},
	}
	for i := range subs {
		require.NoError(t, db.UpsertSubscription(ctx, &subs[i]))
	}

	v := models.Visit{
		PersonEmail: "walkin@x.com",
		PassLabel:   "Drop In",
		Kind:        models.VisitDropIn,
		AttendedAt:  time.Date(2026, time.August, 4, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.UpsertVisit(ctx, &v))
}

func get(t *testing.T, srv http.Handler, path string) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return rec, &resp
}

func TestDashboardEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := get(t, srv, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Data)
	require.False(t, resp.Metadata.Cached)
	require.NotEmpty(t, rec.Header().Get("ETag"))

	// Second hit must come from cache.
	rec2, resp2 := get(t, srv, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec2.Code)
	require.True(t, resp2.Metadata.Cached)
	require.Zero(t, resp2.Metadata.QueryTimeMS)
}

func TestSectionEndpointsShareTheAggregation(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/v1/churn",
		"/api/v1/projection",
		"/api/v1/cohorts",
		"/api/v1/pool",
		"/api/v1/trends",
	} {
		rec, resp := get(t, srv, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Equal(t, "success", resp.Status, path)
	}

	// The section endpoints populate the shared dashboard cache, so the
	// full dashboard now serves without recomputing.
	_, resp := get(t, srv, "/api/v1/dashboard")
	require.True(t, resp.Metadata.Cached)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec, resp := get(t, srv, "/api/v1/health/live")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", resp.Status)

	rec, resp = get(t, srv, "/api/v1/health/ready")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", resp.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestGzipCompression(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, "success", resp.Status)
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
