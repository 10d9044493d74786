// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// RevenuePeriod is one externally computed revenue summary for a
// (period_start, period_end, category) window. Periods may cover a single
// month or span a full year; the engine detects which and never sums a
// full-year row together with monthly rows for the same year.
type RevenuePeriod struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Category    Category  `json:"category"`
	Gross       float64   `json:"gross"`
	Fees        float64   `json:"fees"`
	Net         float64   `json:"net"`

	// Locked marks a manually pinned row that ingest upserts must never
	// overwrite.
	Locked bool `json:"locked"`
}

// SpansMonths returns the approximate number of calendar months the period
// covers, rounded to the nearest month. A row spanning 11 or more months is
// treated as a full-year summary.
func (r *RevenuePeriod) SpansMonths() int {
	days := r.PeriodEnd.Sub(r.PeriodStart).Hours() / 24
	return int(days/30.44 + 0.5)
}

// FullYear reports whether this row is a full-year summary.
func (r *RevenuePeriod) FullYear() bool {
	return r.SpansMonths() >= 11
}
