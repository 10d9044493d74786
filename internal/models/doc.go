// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

/*
Package models defines data structures for the StudioPulse application.

This package contains all data models used throughout the application: the
three persisted record streams, the enumerations derived from free-text plan
and pass names, every derived analytics result type, and the standard API
response envelope. It is the single source of truth for data structure
definitions.

Model Categories:

1. Record Models (persisted in the record store):
  - Subscription: one row per subscription instance, upserted by identity key
  - Visit: one row per attended class or session
  - RevenuePeriod: externally computed revenue totals for a period

2. Enumerations:
  - Category: plan classification with an explicit Unknown fallback
  - SubscriptionState: fixed lifecycle vocabulary
  - BillingCadence: annual vs periodic billing
  - VisitKind: pass-label classification for visit events

3. Analytics Result Models (derived, never persisted):
  - TrendRow, PeriodBucket: week/month bucketed growth rows
  - ChurnReport, ChurnMonthEntry, CadenceChurn: churn tables
  - SurvivalPoint, TenureSummary: Kaplan-Meier tenure survival
  - ProjectionResult: annual revenue projection with guardrail flags
  - CohortReport, CohortRow: weekly acquisition cohorts
  - PoolReport, PoolWeekRow, LagStats: non-subscriber conversion pool
  - RenewalAlert, PacingBlock, CategorySnapshot, Dashboard

4. API Models:
  - APIResponse: standard response wrapper
  - APIError: error details
  - Metadata: response metadata (timestamp, query time, cache status)

All currency fields in analytics results are rounded to 2 decimal places and
all percentage and month fields to 1 decimal place before they leave the
engine, so that responses are byte-stable across identical runs.
*/
package models
