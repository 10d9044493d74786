// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// CohortRow tracks one weekly acquisition cohort's conversion into an
// in-studio subscription. Week1/2/3 count conversions inside day windows
// [0,6], [7,13], and [14,20] relative to each person's acquisition date.
type CohortRow struct {
	WeekStart time.Time `json:"week_start"`
	Label     string    `json:"label"`
	Size      int       `json:"size"`
	Week1     int       `json:"week1"`
	Week2     int       `json:"week2"`
	Week3     int       `json:"week3"`
	Total3W   int       `json:"total_3w"`
	ConvPct   float64   `json:"conv_pct"`

	// Complete marks cohorts old enough (>= maturity window) to contribute
	// to average-conversion reporting.
	Complete bool `json:"complete"`
}

// CohortReport is the acquisition cohort table plus averages over complete
// cohorts.
type CohortReport struct {
	Cohorts []CohortRow `json:"cohorts"`

	CompleteCohorts int     `json:"complete_cohorts"`
	AvgConvPct      float64 `json:"avg_conv_pct"`
	AvgWeek1        float64 `json:"avg_week1"`
	AvgTotal3W      float64 `json:"avg_total_3w"`
}
