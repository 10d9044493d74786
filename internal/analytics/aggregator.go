// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/studiopulse/studiopulse/internal/config"
	"github.com/studiopulse/studiopulse/internal/database"
	"github.com/studiopulse/studiopulse/internal/logging"
	"github.com/studiopulse/studiopulse/internal/metrics"
	"github.com/studiopulse/studiopulse/internal/models"
)

// Aggregator composes the full dashboard from independent sub-computations.
// Each section is a pure function over its own loaded slices; the
// aggregator fans the sections out, recovers any that panic, and joins the
// results. A failed section becomes a nil section in the response, never an
// aborted aggregation.
type Aggregator struct {
	db  *database.DB
	cfg *config.EngineConfig
}

// NewAggregator wires the aggregator to its record store.
func NewAggregator(db *database.DB, cfg *config.EngineConfig) *Aggregator {
	return &Aggregator{db: db, cfg: cfg}
}

// sourceData is everything the section computations need, loaded up front
// so the compute phase never touches the store.
type sourceData struct {
	subs       []models.Subscription
	revenue    []models.RevenuePeriod
	firstVisit map[string]time.Time
	qualifying []models.Visit
	skipped    int64
}

// BuildDashboard loads the source slices, fans out the section
// computations, and joins them into the aggregate response. The only error
// return is a load failure on the primary subscription query; every
// downstream failure degrades to a nil section.
func (a *Aggregator) BuildDashboard(ctx context.Context) (*models.Dashboard, error) {
	return a.buildAt(ctx, time.Now().UTC())
}

func (a *Aggregator) buildAt(ctx context.Context, now time.Time) (*models.Dashboard, error) {
	started := time.Now()
	defer func() {
		metrics.AggregationDuration.Observe(time.Since(started).Seconds())
	}()

	src, err := a.load(ctx, now)
	if err != nil {
		return nil, err
	}

	dash := &models.Dashboard{
		GeneratedAt:    now,
		SkippedRecords: src.skipped,
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)

	run := func(section string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logging.Error().
						Str("section", section).
						Interface("panic", r).
						Msg("aggregation section failed")
					metrics.SectionFailures.WithLabelValues(section).Inc()
					mu.Lock()
					failed = append(failed, section)
					mu.Unlock()
				}
			}()
			fn()
		}()
	}

	run("snapshots", func() {
		dash.Snapshots = BuildSnapshots(src.subs, now)
	})
	run("trends", func() {
		for _, category := range models.Categories {
			if t := BuildCategoryTrends(src.subs, category, now, a.cfg.TrendWeeks, a.cfg.TrailingMonths); t != nil {
				dash.Trends = append(dash.Trends, *t)
			}
		}
	})
	run("pacing", func() {
		dash.Pacing = BuildPacing(src.subs, models.CategoryMember, now)
	})
	run("churn", func() {
		for _, category := range models.Categories {
			if c := BuildChurnReport(src.subs, category, now, a.cfg.TrailingMonths); c != nil {
				dash.Churn = append(dash.Churn, *c)
			}
		}
	})
	run("survival", func() {
		dash.Survival = BuildTenureSummary(src.subs, models.CategoryMember, now, a.cfg.SurvivalHorizonMonths)
	})
	run("projection", func() {
		dash.Projection = BuildProjection(src.subs, src.revenue, now, ProjectionParams{
			GrowthWindowMonths: a.cfg.GrowthWindowMonths,
			MultiplierCap:      a.cfg.NonMRRMultiplierCap,
			SanityCapRatio:     a.cfg.ProjectionSanityCapRatio,
			ClampRatio:         a.cfg.ProjectionClampRatio,
		})
	})
	run("cohorts", func() {
		dash.Cohorts = BuildCohortReport(src.firstVisit, src.subs, now, a.cfg.CohortMaturityDays)
	})
	run("pool", func() {
		dash.Pool = BuildPoolReport(src.qualifying, src.subs, now, a.cfg.PoolTrailingWeeks)
	})
	run("alerts", func() {
		dash.Alerts = BuildAlerts(src.subs, now)
	})

	wg.Wait()

	sort.Strings(failed)
	dash.FailedSections = failed
	return dash, nil
}

// load pulls every source slice the sections need. The qualifying-visit
// subset is materialized into a scratch table scoped to this call and torn
// down before load returns, error paths included. Secondary sources degrade
// to empty slices with a logged warning; only the subscription query is
// load-bearing.
func (a *Aggregator) load(ctx context.Context, now time.Time) (*sourceData, error) {
	src := &sourceData{}

	all, err := a.db.AllSubscriptionsWithIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subscriptions: %w", err)
	}

	// Rows without a usable creation date cannot participate in any
	// windowed aggregate.
	src.subs = all[:0:0]
	for i := range all {
		if all[i].CreatedAt.IsZero() {
			src.skipped++
			metrics.SkippedRecords.WithLabelValues("subscriptions", "missing_created_at").Inc()
			continue
		}
		src.subs = append(src.subs, all[i])
	}

	if src.revenue, err = a.db.RevenuePeriodsForYear(ctx, now.Year()-1, false); err != nil {
		logging.Warn().Err(err).Msg("loading revenue periods failed, projection will degrade")
		src.revenue = nil
	}

	if src.firstVisit, err = a.db.FirstVisitPerPerson(ctx, true); err != nil {
		logging.Warn().Err(err).Msg("loading first visits failed, cohorts unavailable")
		src.firstVisit = nil
	}

	scratch, err := a.db.MaterializeQualifyingVisits(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("materializing qualifying visits failed, pool unavailable")
		return src, nil
	}
	defer scratch.Release()

	if src.qualifying, err = scratch.QualifyingVisits(ctx); err != nil {
		logging.Warn().Err(err).Msg("reading qualifying visits failed, pool unavailable")
		src.qualifying = nil
	}
	return src, nil
}
