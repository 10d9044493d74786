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

	"github.com/studiopulse/studiopulse/internal/logging"
	"github.com/studiopulse/studiopulse/internal/models"
)

// Scratch is a scoped temporary table holding the pool-qualifying subset of
// visits (in-studio, not covered by a subscription) so the conversion pool
// slices can share one materialization instead of re-filtering the full
// visit history per slice.
//
// Each aggregation call creates its own scratch with a unique table name and
// must release it on every path, including errors:
//
//	scratch, err := db.MaterializeQualifyingVisits(ctx)
//	if err != nil { ... }
//	defer scratch.Release()
type Scratch struct {
	db    *DB
	table string
}

// MaterializeQualifyingVisits creates and fills a scratch table with the
// non-subscriber in-studio visit subset.
func (db *DB) MaterializeQualifyingVisits(ctx context.Context) (*Scratch, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// Temp table names cannot be parameterized; the suffix is a generated
	// hex string, never user input.
	table := "scratch_pool_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	_, err := db.conn.ExecContext(ctx, fmt.Sprintf(`
		CREATE TEMP TABLE %s AS
		SELECT person_email, pass_label, kind, attended_at
		FROM visits
		WHERE NOT subscriber_visit AND kind <> 'remote' AND person_email <> ''`, table))
	if err != nil {
		return nil, fmt.Errorf("materialize qualifying visits: %w", err)
	}

	return &Scratch{db: db, table: table}, nil
}

// QualifyingVisits reads the materialized subset back, ordered by
// attendance date.
func (s *Scratch) QualifyingVisits(ctx context.Context) ([]models.Visit, error) {
	ctx, cancel := s.db.ensureContext(ctx)
	defer cancel()

	rows, err := s.db.conn.QueryContext(ctx, fmt.Sprintf(
		`SELECT person_email, pass_label, kind, attended_at FROM %s ORDER BY attended_at`, s.table))
	if err != nil {
		return nil, fmt.Errorf("read qualifying visits: %w", err)
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		var v models.Visit
		var kind string
		if err := rows.Scan(&v.PersonEmail, &v.PassLabel, &kind, &v.AttendedAt); err != nil {
			return nil, fmt.Errorf("scan qualifying visit: %w", err)
		}
		v.Kind = models.VisitKind(kind)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qualifying visits: %w", err)
	}
	return visits, nil
}

// Release drops the scratch table. Safe to call multiple times; failures are
// logged, not returned, because teardown runs on error paths where the
// original error matters more.
func (s *Scratch) Release() {
	if s.table == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+s.table); err != nil {
		logging.Warn().Err(err).Str("table", s.table).Msg("Failed to drop scratch table")
	}
	s.table = ""
}
