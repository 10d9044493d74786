// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiopulse/studiopulse/internal/classify"
	"github.com/studiopulse/studiopulse/internal/metrics"
	"github.com/studiopulse/studiopulse/internal/models"
)

const subscriptionColumns = `id, plan_name, category, cadence, price_amount,
	monthly_rate, state, person_email, person_name, created_at, canceled_at`

// UpsertSubscription inserts a subscription row or, when the dedup key
// (person_email, plan_name, created_at) already exists, updates only the
// mutable lifecycle fields: state and canceled_at. History is never deleted;
// retroactive churn computation depends on canceled rows staying put.
func (db *DB) UpsertSubscription(ctx context.Context, sub *models.Subscription) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.PersonEmail = strings.ToLower(strings.TrimSpace(sub.PersonEmail))

	// Ingest rows may carry only the raw plan label; derive the rest.
	if sub.Category == "" || sub.Cadence == "" {
		category, cadence := classify.Plan(sub.PlanName)
		if sub.Category == "" {
			sub.Category = category
		}
		if sub.Cadence == "" {
			sub.Cadence = cadence
		}
	}
	if sub.MonthlyRate == 0 && sub.PriceAmount != 0 {
		sub.MonthlyRate = classify.MonthlyRate(sub.PriceAmount, sub.Cadence)
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (person_email, plan_name, created_at) DO UPDATE SET
			state = excluded.state,
			canceled_at = excluded.canceled_at`,
		sub.ID, sub.PlanName, string(sub.Category), string(sub.Cadence),
		sub.PriceAmount, sub.MonthlyRate, string(sub.State),
		sub.PersonEmail, sub.PersonName, sub.CreatedAt, sub.CanceledAt)
	metrics.DBQueryDuration.WithLabelValues("upsert", "subscriptions").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "subscriptions").Inc()
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// SubscriptionsCreatedBetween returns subscriptions created within
// [start, end), ordered by creation date.
func (db *DB) SubscriptionsCreatedBetween(ctx context.Context, start, end time.Time) ([]models.Subscription, error) {
	return db.querySubscriptions(ctx, "created_between",
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE created_at >= ? AND created_at < ?
		 ORDER BY created_at`, start, end)
}

// SubscriptionsCanceledBetween returns subscriptions canceled within
// [start, end), ordered by cancellation date.
func (db *DB) SubscriptionsCanceledBetween(ctx context.Context, start, end time.Time) ([]models.Subscription, error) {
	return db.querySubscriptions(ctx, "canceled_between",
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE canceled_at IS NOT NULL AND canceled_at >= ? AND canceled_at < ?
		 ORDER BY canceled_at`, start, end)
}

// AllSubscriptionsWithIdentity returns every subscription carrying a
// non-empty identity key, the working set for churn reconstruction and
// survival analysis.
func (db *DB) AllSubscriptionsWithIdentity(ctx context.Context) ([]models.Subscription, error) {
	return db.querySubscriptions(ctx, "all_with_identity",
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE person_email <> ''
		 ORDER BY created_at`)
}

func (db *DB) querySubscriptions(ctx context.Context, operation, query string, args ...interface{}) ([]models.Subscription, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.DBQueryDuration.WithLabelValues(operation, "subscriptions").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation, "subscriptions").Inc()
		return nil, fmt.Errorf("query subscriptions (%s): %w", operation, err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var s models.Subscription
		var name sql.NullString
		var canceled sql.NullTime
		var category, cadence, state string
		if err := rows.Scan(&s.ID, &s.PlanName, &category, &cadence, &s.PriceAmount,
			&s.MonthlyRate, &state, &s.PersonEmail, &name, &s.CreatedAt, &canceled); err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		s.Category = models.Category(category)
		s.Cadence = models.BillingCadence(cadence)
		s.State = models.SubscriptionState(state)
		if name.Valid {
			s.PersonName = name.String
		}
		if canceled.Valid {
			t := canceled.Time
			s.CanceledAt = &t
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription rows: %w", err)
	}
	return subs, nil
}
