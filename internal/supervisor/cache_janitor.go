// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package supervisor

import (
	"context"
	"time"

	"github.com/studiopulse/studiopulse/internal/cache"
	"github.com/studiopulse/studiopulse/internal/logging"
)

// CacheJanitor periodically evicts expired response cache entries so a
// quiet deployment does not hold stale aggregates in memory indefinitely.
type CacheJanitor struct {
	cache    *cache.Cache
	interval time.Duration
}

// NewCacheJanitor creates a janitor sweeping at the given interval.
func NewCacheJanitor(c *cache.Cache, interval time.Duration) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{cache: c, interval: interval}
}

// Serve implements suture.Service.
func (j *CacheJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := j.cache.Cleanup(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("cache janitor sweep")
			}
		}
	}
}

// String identifies the service in suture's event log.
func (j *CacheJanitor) String() string {
	return "cache-janitor"
}
