// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

// MRRPoint is one reconstructed month of historical MRR, produced by
// backtracking from the current total rather than from stored snapshots.
type MRRPoint struct {
	Label string  `json:"label"`
	MRR   float64 `json:"mrr"`
}

// ProjectionResult is the annual revenue projection reconciled against
// prior-year actuals.
type ProjectionResult struct {
	CurrentMRR       float64    `json:"current_mrr"`
	History          []MRRPoint `json:"history"`
	MonthlyGrowthPct float64    `json:"monthly_growth_pct"`

	// PriorYearRevenue is the MRR-based estimate for the prior year;
	// PriorYearActualRevenue is the reconciled actual from revenue period
	// summaries (a full-year row wins over monthly rows outright).
	PriorYearRevenue       float64 `json:"prior_year_revenue"`
	PriorYearActualRevenue float64 `json:"prior_year_actual_revenue"`

	// NonMRRMultiplier scales the MRR projection for revenue the
	// subscription ledger cannot see (retail, workshops, drop-ins). Floored
	// at 1.0 and capped; MultiplierCapped flags when the raw ratio exceeded
	// the cap.
	NonMRRMultiplier float64 `json:"non_mrr_multiplier"`
	MultiplierCapped bool    `json:"multiplier_capped"`

	ProjectedRevenue float64 `json:"projected_revenue"`

	// Clamped flags that the raw projection exceeded the sanity cap and was
	// clamped to the configured growth ceiling over prior-year actuals.
	Clamped      bool    `json:"clamped"`
	RawProjected float64 `json:"raw_projected,omitempty"`

	// Degraded marks a projection produced without any subscription
	// history: only the prior-year fields carry data.
	Degraded bool `json:"degraded"`
}
