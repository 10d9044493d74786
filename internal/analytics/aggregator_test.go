// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/studiopulse/studiopulse/internal/config"
	"github.com/studiopulse/studiopulse/internal/database"
	"github.com/studiopulse/studiopulse/internal/models"
)

func newTestAggregator(t *testing.T) (*Aggregator, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB"})
	require.NoError(t, err, "open in-memory database")
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	cfg := config.Default().Engine
	return NewAggregator(db, &cfg), db
}

func seedAggregatorData(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	subs := []models.Subscription{
		member("a@x.com", 200, ts(2025, time.January, 6)),
		member("b@x.com", 150, ts(2025, time.June, 2)),
		canceled(member("c@x.com", 150, ts(2025, time.February, 3)), ts(2026, time.March, 10)),
	}
	for i := range subs {
		require.NoError(t, db.UpsertSubscription(ctx, &subs[i]))
	}

	visits := []models.Visit{
		visit("b@x.com", models.VisitDropIn, ts(2025, time.May, 20)),
		visit("b@x.com", models.VisitDropIn, ts(2025, time.May, 27)),
		visit("walkin@x.com", models.VisitClassPack, ts(2026, time.August, 4)),
	}
	for i := range visits {
		visits[i].PassLabel = string(visits[i].Kind)
		require.NoError(t, db.UpsertVisit(ctx, &visits[i]))
	}

	rev := models.RevenuePeriod{
		PeriodStart: ts(2025, time.January, 1),
		PeriodEnd:   ts(2025, time.December, 31),
		Category:    models.CategoryMember,
		Gross:       520_000,
		Fees:        20_000,
		Net:         500_000,
	}
	require.NoError(t, db.UpsertRevenuePeriod(ctx, &rev))
}

func TestAggregatorComposesSections(t *testing.T) {
	agg, db := newTestAggregator(t)
	seedAggregatorData(t, db)

	now := ts(2026, time.August, 12)
	dash, err := agg.buildAt(context.Background(), now)
	require.NoError(t, err)

	require.Empty(t, dash.FailedSections, "no section should fail on clean data")
	require.NotEmpty(t, dash.Snapshots, "snapshots")
	require.NotEmpty(t, dash.Trends, "trends")
	require.NotNil(t, dash.Pacing, "pacing")
	require.NotEmpty(t, dash.Churn, "churn")
	require.NotNil(t, dash.Survival, "survival")
	require.NotNil(t, dash.Projection, "projection")
	require.NotNil(t, dash.Cohorts, "cohorts")
	require.NotNil(t, dash.Pool, "pool")

	// b@x.com visited twice before subscribing June 2; the cohort engine
	// must see the May acquisition even this long after the fact.
	require.NotZero(t, dash.Cohorts.Cohorts[0].Size)
}

func TestAggregatorIdempotent(t *testing.T) {
	agg, db := newTestAggregator(t)
	seedAggregatorData(t, db)

	now := ts(2026, time.August, 12)
	ctx := context.Background()

	first, err := agg.buildAt(ctx, now)
	require.NoError(t, err)
	second, err := agg.buildAt(ctx, now)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(a), string(b), "same store, same clock, same bytes")
}

func TestAggregatorEmptyStore(t *testing.T) {
	agg, _ := newTestAggregator(t)

	dash, err := agg.buildAt(context.Background(), ts(2026, time.August, 12))
	require.NoError(t, err)

	// Empty sources are a first-class state: nil sections, no error.
	require.Nil(t, dash.Projection)
	require.Nil(t, dash.Cohorts)
	require.Nil(t, dash.Pool)
	require.Nil(t, dash.Survival)
	require.Empty(t, dash.Snapshots)
	require.Empty(t, dash.FailedSections)
}
