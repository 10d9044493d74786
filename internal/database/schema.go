// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package database

import (
	"fmt"
)

// createTables creates the record store schema. Every table carries a dedup
// key so ingestion can re-deliver snapshots idempotently.
func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY,
			plan_name VARCHAR NOT NULL,
			category VARCHAR NOT NULL,
			cadence VARCHAR NOT NULL,
			price_amount DOUBLE NOT NULL,
			monthly_rate DOUBLE NOT NULL,
			state VARCHAR NOT NULL,
			person_email VARCHAR NOT NULL,
			person_name VARCHAR,
			created_at TIMESTAMP NOT NULL,
			canceled_at TIMESTAMP,
			UNIQUE (person_email, plan_name, created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id UUID PRIMARY KEY,
			person_email VARCHAR NOT NULL,
			pass_label VARCHAR NOT NULL,
			kind VARCHAR NOT NULL,
			attended_at TIMESTAMP NOT NULL,
			subscriber_visit BOOLEAN NOT NULL DEFAULT false,
			UNIQUE (person_email, attended_at, pass_label)
		)`,
		`CREATE TABLE IF NOT EXISTS revenue_periods (
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			category VARCHAR NOT NULL,
			gross DOUBLE NOT NULL DEFAULT 0,
			fees DOUBLE NOT NULL DEFAULT 0,
			net DOUBLE NOT NULL DEFAULT 0,
			locked BOOLEAN NOT NULL DEFAULT false,
			PRIMARY KEY (period_start, period_end, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_email ON subscriptions (person_email)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_created ON subscriptions (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_canceled ON subscriptions (canceled_at)`,
		`CREATE INDEX IF NOT EXISTS idx_visits_email ON visits (person_email)`,
		`CREATE INDEX IF NOT EXISTS idx_visits_attended ON visits (attended_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
