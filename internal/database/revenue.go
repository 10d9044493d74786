// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/studiopulse/studiopulse/internal/logging"
	"github.com/studiopulse/studiopulse/internal/metrics"
	"github.com/studiopulse/studiopulse/internal/models"
)

// UpsertRevenuePeriod inserts or refreshes a revenue period summary. Locked
// rows are manually pinned figures and are never overwritten; an attempt to
// do so is logged and dropped.
func (db *DB) UpsertRevenuePeriod(ctx context.Context, period *models.RevenuePeriod) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var locked bool
	err := db.conn.QueryRowContext(ctx, `
		SELECT locked FROM revenue_periods
		WHERE period_start = ? AND period_end = ? AND category = ?`,
		period.PeriodStart, period.PeriodEnd, string(period.Category)).Scan(&locked)
	if err == nil && locked {
		logging.Warn().
			Time("period_start", period.PeriodStart).
			Str("category", string(period.Category)).
			Msg("Refusing to overwrite locked revenue period")
		return nil
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO revenue_periods (period_start, period_end, category, gross, fees, net, locked)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (period_start, period_end, category) DO UPDATE SET
			gross = excluded.gross,
			fees = excluded.fees,
			net = excluded.net,
			locked = excluded.locked`,
		period.PeriodStart, period.PeriodEnd, string(period.Category),
		period.Gross, period.Fees, period.Net, period.Locked)
	metrics.DBQueryDuration.WithLabelValues("upsert", "revenue_periods").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "revenue_periods").Inc()
		return fmt.Errorf("upsert revenue period: %w", err)
	}
	return nil
}

// RevenuePeriodsForYear returns revenue periods whose start falls in the
// given year. When lockedOnly is set, only manually pinned rows return.
func (db *DB) RevenuePeriodsForYear(ctx context.Context, year int, lockedOnly bool) ([]models.RevenuePeriod, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT period_start, period_end, category, gross, fees, net, locked
		FROM revenue_periods
		WHERE period_start >= ? AND period_start < ?`
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	args := []interface{}{yearStart, yearStart.AddDate(1, 0, 0)}
	if lockedOnly {
		query += " AND locked"
	}
	query += " ORDER BY period_start"

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.DBQueryDuration.WithLabelValues("for_year", "revenue_periods").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("for_year", "revenue_periods").Inc()
		return nil, fmt.Errorf("query revenue periods: %w", err)
	}
	defer rows.Close()

	var periods []models.RevenuePeriod
	for rows.Next() {
		var p models.RevenuePeriod
		var category string
		if err := rows.Scan(&p.PeriodStart, &p.PeriodEnd, &category, &p.Gross, &p.Fees, &p.Net, &p.Locked); err != nil {
			return nil, fmt.Errorf("scan revenue period row: %w", err)
		}
		p.Category = models.Category(category)
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue period rows: %w", err)
	}
	return periods, nil
}
