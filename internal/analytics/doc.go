// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

/*
Package analytics implements the aggregation and projection engine: the
logic that turns subscription, visit, and revenue records into churn tables,
tenure survival curves, acquisition cohorts, the non-subscriber conversion
pool, weekly and monthly trends with pacing, the annual revenue projection,
and renewal alerts.

Every section is a pure function over explicit record slices: no section
reads the store, holds state between calls, or depends on another section's
output. The Aggregator is the only orchestrating piece: it loads the record
slices once, fans the sections out on goroutines, and recovers any section
fault into a null section so a single bad computation can never take down
the whole response.

Numeric conventions, applied before any value leaves the engine:
  - currency: 2 decimal places
  - percentages and month counts: 1 decimal place
  - rates with a zero denominator report 0, never NaN
*/
package analytics
