// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

// Package classify maps the free-text plan and pass names arriving from the
// ingestion pipeline onto the closed enumerations the engine computes with,
// and normalizes the heterogeneous date-string formats those sources emit.
//
// Every function here is pure and total: unrecognized plan names map to
// models.CategoryUnknown, unrecognized pass labels to models.VisitOther, and
// unparseable dates report ok=false instead of panicking, so callers can
// skip the affected record and keep counting.
package classify
