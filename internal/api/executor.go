// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/studiopulse/studiopulse/internal/cache"
	"github.com/studiopulse/studiopulse/internal/models"
)

// QueryExecutor encapsulates the cache-first execution flow shared by every
// analytics endpoint:
//
//  1. Check the response cache for an existing result.
//  2. Run the aggregation on a miss.
//  3. Cache the result for subsequent requests.
//  4. Respond with the standard envelope including query time and cache
//     status.
//
// Cache hits report a query time of 0 with Cached set; misses report the
// actual aggregation time in milliseconds.
type QueryExecutor struct {
	handler *Handler
}

// NewQueryExecutor creates an executor bound to the handler's cache and
// aggregator.
func NewQueryExecutor(h *Handler) *QueryExecutor {
	return &QueryExecutor{handler: h}
}

// QueryFunc runs one aggregation query. The result must be
// JSON-serializable; it is cached and returned inside the response
// envelope.
type QueryFunc func(ctx context.Context) (interface{}, error)

// Execute runs a named query through the cache-first flow.
func (e *QueryExecutor) Execute(w http.ResponseWriter, r *http.Request, name string, queryFunc QueryFunc) {
	if e.handler.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return
	}

	start := time.Now()
	cacheKey := cache.GenerateKey(name, nil)

	if e.handler.cache != nil {
		if cached, found := e.handler.cache.Get(cacheKey); found {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp:   time.Now(),
					QueryTimeMS: 0,
					Cached:      true,
				},
			})
			return
		}
	}

	data, err := queryFunc(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to execute query: "+name, err)
		return
	}

	if e.handler.cache != nil {
		e.handler.cache.Set(cacheKey, data)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
