// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// PoolSlice names a filter applied to the conversion pool.
type PoolSlice string

const (
	PoolAll        PoolSlice = "all"
	PoolDropIn     PoolSlice = "drop_in"
	PoolIntroWeek  PoolSlice = "intro_week"
	PoolClassPack  PoolSlice = "class_pack"
	PoolHighIntent PoolSlice = "high_intent"
)

// PoolSlices lists the reported slices in order.
var PoolSlices = []PoolSlice{PoolAll, PoolDropIn, PoolIntroWeek, PoolClassPack, PoolHighIntent}

// PoolWeekRow is one week of the non-subscriber conversion pool: how many
// distinct non-subscribers visited, and how many of them started their first
// in-studio subscription that week after at least one qualifying visit.
type PoolWeekRow struct {
	WeekStart time.Time `json:"week_start"`
	Label     string    `json:"label"`
	PoolSize  int       `json:"pool_size"`
	Converts  int       `json:"converts"`
	ConvPct   float64   `json:"conv_pct"`
}

// LagBucket is one bin of a conversion-lag histogram.
type LagBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LagStats summarizes how long and how many visits it takes pool members to
// convert, over a trailing window of complete weeks. The potentially empty
// current week is kept out of these figures.
type LagStats struct {
	Conversions        int         `json:"conversions"`
	MedianDaysToConv   float64     `json:"median_days_to_convert"`
	AvgVisitsBeforeConv float64    `json:"avg_visits_before_convert"`
	DayBuckets         []LagBucket `json:"day_buckets"`
	VisitBuckets       []LagBucket `json:"visit_buckets"`
}

// PoolSliceReport is the weekly pool table for one slice.
type PoolSliceReport struct {
	Slice PoolSlice     `json:"slice"`
	Weeks []PoolWeekRow `json:"weeks"`
}

// PoolReport is the full conversion pool section: per-slice weekly tables,
// the week-to-date pool at two windows, and trailing lag statistics.
type PoolReport struct {
	Slices []PoolSliceReport `json:"slices"`

	// Week-to-date pool sizes for the current partial week, measured over
	// trailing 7-day and 30-day qualifying windows.
	CurrentPool7d  int `json:"current_pool_7d"`
	CurrentPool30d int `json:"current_pool_30d"`

	Lag *LagStats `json:"lag,omitempty"`
}
