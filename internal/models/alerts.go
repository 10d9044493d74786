// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import "time"

// AlertKind distinguishes the events an alert row can describe.
type AlertKind string

const (
	// AlertRenewal fires when a subscription's next renewal date is within
	// seven days.
	AlertRenewal AlertKind = "renewal"

	// AlertMilestone3M and AlertMilestone7M fire within one week of the
	// 3-month and 7-month tenure milestones.
	AlertMilestone3M AlertKind = "milestone_3m"
	AlertMilestone7M AlertKind = "milestone_7m"
)

// RenewalAlert is one row in the renewal/tenure-milestone alert list.
type RenewalAlert struct {
	Kind        AlertKind `json:"kind"`
	PersonEmail string    `json:"person_email"`
	PersonName  string    `json:"person_name"`
	PlanName    string    `json:"plan_name"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date"`
	DaysAway    int       `json:"days_away"`
}
