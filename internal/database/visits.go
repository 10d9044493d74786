// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiopulse/studiopulse/internal/classify"
	"github.com/studiopulse/studiopulse/internal/metrics"
	"github.com/studiopulse/studiopulse/internal/models"
)

const visitColumns = `id, person_email, pass_label, kind, attended_at, subscriber_visit`

// UpsertVisit inserts a visit row, ignoring exact re-deliveries of the same
// (person_email, attended_at, pass_label) key.
func (db *DB) UpsertVisit(ctx context.Context, visit *models.Visit) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if visit.ID == "" {
		visit.ID = uuid.NewString()
	}
	visit.PersonEmail = strings.ToLower(strings.TrimSpace(visit.PersonEmail))
	if visit.Kind == "" {
		visit.Kind = classify.Visit(visit.PassLabel)
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO visits (`+visitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		visit.ID, visit.PersonEmail, visit.PassLabel, string(visit.Kind),
		visit.AttendedAt, visit.SubscriberVisit)
	metrics.DBQueryDuration.WithLabelValues("upsert", "visits").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("upsert", "visits").Inc()
		return fmt.Errorf("upsert visit: %w", err)
	}
	return nil
}

// VisitsBetween returns visits attended within [start, end), optionally
// restricted to the given kinds and/or to subscriber or non-subscriber
// coverage (nil means either).
func (db *DB) VisitsBetween(ctx context.Context, start, end time.Time, kinds []models.VisitKind, subscriberOnly *bool) ([]models.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE attended_at >= ? AND attended_at < ?`
	args := []interface{}{start, end}

	if len(kinds) > 0 {
		placeholders := make([]string, len(kinds))
		for i, k := range kinds {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		query += fmt.Sprintf(" AND kind IN (%s)", strings.Join(placeholders, ","))
	}
	if subscriberOnly != nil {
		query += " AND subscriber_visit = ?"
		args = append(args, *subscriberOnly)
	}
	query += " ORDER BY attended_at"

	return db.queryVisits(ctx, "between", query, args...)
}

// AllVisits returns the full visit history ordered by attendance date.
func (db *DB) AllVisits(ctx context.Context) ([]models.Visit, error) {
	return db.queryVisits(ctx, "all",
		`SELECT `+visitColumns+` FROM visits WHERE person_email <> '' ORDER BY attended_at`)
}

// FirstVisitPerPerson returns the earliest visit per identity. When
// inStudioOnly is set, remote visits are excluded before taking the minimum,
// which is the acquisition-date shape the cohort engine needs.
func (db *DB) FirstVisitPerPerson(ctx context.Context, inStudioOnly bool) (map[string]time.Time, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT person_email, MIN(attended_at) FROM visits WHERE person_email <> ''`
	if inStudioOnly {
		query += ` AND kind <> 'remote'`
	}
	query += ` GROUP BY person_email`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.DBQueryDuration.WithLabelValues("first_per_person", "visits").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("first_per_person", "visits").Inc()
		return nil, fmt.Errorf("query first visits: %w", err)
	}
	defer rows.Close()

	first := make(map[string]time.Time)
	for rows.Next() {
		var email string
		var at time.Time
		if err := rows.Scan(&email, &at); err != nil {
			return nil, fmt.Errorf("scan first visit row: %w", err)
		}
		first[email] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate first visit rows: %w", err)
	}
	return first, nil
}

// VisitsWithinDays returns a person's visits inside [ref-days, ref).
func (db *DB) VisitsWithinDays(ctx context.Context, email string, ref time.Time, days int) ([]models.Visit, error) {
	start := ref.AddDate(0, 0, -days)
	return db.queryVisits(ctx, "within_days",
		`SELECT `+visitColumns+` FROM visits
		 WHERE person_email = ? AND attended_at >= ? AND attended_at < ?
		 ORDER BY attended_at`,
		strings.ToLower(strings.TrimSpace(email)), start, ref)
}

func (db *DB) queryVisits(ctx context.Context, operation, query string, args ...interface{}) ([]models.Visit, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.DBQueryDuration.WithLabelValues(operation, "visits").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation, "visits").Inc()
		return nil, fmt.Errorf("query visits (%s): %w", operation, err)
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		var v models.Visit
		var kind string
		if err := rows.Scan(&v.ID, &v.PersonEmail, &v.PassLabel, &kind, &v.AttendedAt, &v.SubscriberVisit); err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		v.Kind = models.VisitKind(kind)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visit rows: %w", err)
	}
	return visits, nil
}
