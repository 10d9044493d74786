// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// Dashboard is the single aggregate response composed by the engine. Every
// section is independently computed; a section is nil when its data source
// is empty or its computation failed, and the rest of the response is still
// populated (bulkhead isolation).
type Dashboard struct {
	GeneratedAt time.Time `json:"generated_at"`

	Snapshots []CategorySnapshot `json:"snapshots,omitempty"`
	Trends    []CategoryTrends   `json:"trends,omitempty"`
	Pacing    *PacingBlock       `json:"pacing,omitempty"`

	Churn    []ChurnReport  `json:"churn,omitempty"`
	Survival *TenureSummary `json:"survival,omitempty"`

	Projection *ProjectionResult `json:"projection,omitempty"`

	Cohorts *CohortReport `json:"cohorts,omitempty"`
	Pool    *PoolReport   `json:"pool,omitempty"`

	Alerts []RenewalAlert `json:"alerts,omitempty"`

	// SkippedRecords counts source rows dropped for unparseable fields
	// during this aggregation, for diagnostics.
	SkippedRecords int64 `json:"skipped_records"`

	// FailedSections names sections that panicked and were substituted with
	// null rather than aborting the whole aggregation.
	FailedSections []string `json:"failed_sections,omitempty"`
}
