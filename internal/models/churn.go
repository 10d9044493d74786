// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// ChurnMonthEntry is one month of churn metrics for a category. The active
// population is reconstructed from event history as of the month start, not
// read from a stored snapshot.
type ChurnMonthEntry struct {
	MonthStart    time.Time `json:"month_start"`
	Label         string    `json:"label"`
	ActiveAtStart int       `json:"active_at_start"`
	ActiveMRR     float64   `json:"active_mrr"`
	Canceled      int       `json:"canceled"`
	CanceledMRR   float64   `json:"canceled_mrr"`
	UserChurnPct  float64   `json:"user_churn_pct"`
	MRRChurnPct   float64   `json:"mrr_churn_pct"`

	// Partial marks the current in-progress month. Partial months are
	// reported but excluded from trailing averages.
	Partial bool `json:"partial"`
}

// CadenceChurn splits a month's churn metrics by billing cadence. Only
// produced for the MEMBER category, where annual and periodic populations
// must not be compared head to head.
type CadenceChurn struct {
	MonthStart time.Time `json:"month_start"`
	Label      string    `json:"label"`

	AnnualActive    int     `json:"annual_active"`
	AnnualCanceled  int     `json:"annual_canceled"`
	AnnualChurnPct  float64 `json:"annual_churn_pct"`
	AnnualMRR       float64 `json:"annual_mrr"`
	AnnualMRRLost   float64 `json:"annual_mrr_lost"`

	PeriodicActive   int     `json:"periodic_active"`
	PeriodicCanceled int     `json:"periodic_canceled"`
	PeriodicChurnPct float64 `json:"periodic_churn_pct"`
	PeriodicMRR      float64 `json:"periodic_mrr"`
	PeriodicMRRLost  float64 `json:"periodic_mrr_lost"`

	// EligibleChurnPct is periodic cancels over periodic active. Annual
	// subscribers cannot churn mid-term and are excluded from both numerator
	// and denominator.
	EligibleChurnPct float64 `json:"eligible_churn_pct"`

	Partial bool `json:"partial"`
}

// ChurnReport is the full churn table for one category.
type ChurnReport struct {
	Category Category          `json:"category"`
	Months   []ChurnMonthEntry `json:"months"`

	// Trailing averages over completed months only.
	AvgUserChurnPct float64 `json:"avg_user_churn_pct"`
	AvgMRRChurnPct  float64 `json:"avg_mrr_churn_pct"`

	// ByCadence is populated for MEMBER only.
	ByCadence []CadenceChurn `json:"by_cadence,omitempty"`

	// AvgEligibleChurnPct averages the eligible rate over completed months;
	// MEMBER only.
	AvgEligibleChurnPct float64 `json:"avg_eligible_churn_pct,omitempty"`

	// AtRisk is a point-in-time snapshot of past-due, invalid, and
	// pending-cancel subscriptions.
	AtRisk int `json:"at_risk"`
}
