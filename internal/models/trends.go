// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// PeriodBucket accumulates subscription movement for one week or month and
// one category. Buckets are ephemeral intermediates; TrendRow is the
// reported shape.
type PeriodBucket struct {
	PeriodStart time.Time `json:"period_start"`
	NewCount    int       `json:"new_count"`
	ChurnCount  int       `json:"churn_count"`
	NewMRR      float64   `json:"new_mrr"`
	ChurnedMRR  float64   `json:"churned_mrr"`
}

// TrendRow is one reported week or month of subscription movement for a
// category, with period-over-period deltas. DeltaPct fields are nil when the
// prior period value is zero (no meaningful percentage exists).
type TrendRow struct {
	PeriodStart     time.Time `json:"period_start"`
	Label           string    `json:"label"`
	NewCount        int       `json:"new_count"`
	ChurnCount      int       `json:"churn_count"`
	NetGrowth       int       `json:"net_growth"`
	RevenueDelta    float64   `json:"revenue_delta"`
	NewDeltaAbs     int       `json:"new_delta_abs"`
	NewDeltaPct     *float64  `json:"new_delta_pct"`
	ChurnDeltaAbs   int       `json:"churn_delta_abs"`
	ChurnDeltaPct   *float64  `json:"churn_delta_pct"`
	RevenueDeltaAbs float64   `json:"revenue_delta_abs"`
	RevenueDeltaPct *float64  `json:"revenue_delta_pct"`
}

// CategoryTrends holds the weekly and monthly trend rows for one category.
type CategoryTrends struct {
	Category Category   `json:"category"`
	Weekly   []TrendRow `json:"weekly"`
	Monthly  []TrendRow `json:"monthly"`
}

// CategorySnapshot is the current headcount/MRR/ARPU picture for one
// category. Headcount dedups by person; MRR counts every subscription row.
type CategorySnapshot struct {
	Category  Category `json:"category"`
	Headcount int      `json:"headcount"`
	MRR       float64  `json:"mrr"`
	ARPU      float64  `json:"arpu"`
	AtRisk    int      `json:"at_risk"`
}

// PacingBlock compares the current partial month's actual new MRR against a
// days-elapsed extrapolation to a full-month estimate.
type PacingBlock struct {
	MonthStart    time.Time `json:"month_start"`
	DaysElapsed   int       `json:"days_elapsed"`
	DaysInMonth   int       `json:"days_in_month"`
	ActualNewMRR  float64   `json:"actual_new_mrr"`
	PacedNewMRR   float64   `json:"paced_new_mrr"`
	ActualNew     int       `json:"actual_new"`
	PacedNew      float64   `json:"paced_new"`
	ActualChurned int       `json:"actual_churned"`
}
