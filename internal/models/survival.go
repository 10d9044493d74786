// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

// SurvivalPoint is one month mark on the Kaplan-Meier tenure survival curve.
// RetainedPct is the estimated percentage of subscribers still active at the
// mark; the curve is non-increasing in Month.
type SurvivalPoint struct {
	Month       int     `json:"month"`
	RetainedPct float64 `json:"retained_pct"`
	AtRisk      int     `json:"at_risk"`
}

// TenureSummary carries the survival curve plus the tenure milestone
// statistics reported for the MEMBER category.
type TenureSummary struct {
	Curve      []SurvivalPoint `json:"curve"`
	SampleSize int             `json:"sample_size"`

	// MedianTenureMonths is the first month mark where estimated survival
	// drops below 50%, falling back to the raw sample median when the curve
	// never crosses it inside the tracked horizon.
	MedianTenureMonths float64 `json:"median_tenure_months"`

	// Month4RenewalPct is conditional survival past the minimum-commitment
	// cliff: people with tenure >= 4 months over people with tenure >= 3.
	Month4RenewalPct float64 `json:"month4_renewal_pct"`

	// AvgTenurePastCliff is the average tenure in months among people who
	// survived past month 4.
	AvgTenurePastCliff float64 `json:"avg_tenure_past_cliff"`
}
