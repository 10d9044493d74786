// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import (
	"strings"
	"time"
)

// Category classifies a subscription plan by the product family it belongs to.
// Classification is derived from the free-text plan name by the classify
// package; anything the classifier does not recognize maps to CategoryUnknown
// so downstream consumers can never silently mishandle an unrecognized plan.
type Category string

const (
	// CategoryMember is the core in-studio membership.
	CategoryMember Category = "MEMBER"

	// CategorySky3 is the 3-classes-per-month starter plan.
	CategorySky3 Category = "SKY3"

	// CategoryTVEquivalent covers video/remote-only plans.
	CategoryTVEquivalent Category = "TV_EQUIVALENT"

	// CategoryUnknown is the explicit fallback for unrecognized plan names.
	CategoryUnknown Category = "UNKNOWN"
)

// Categories lists every known category in reporting order.
var Categories = []Category{CategoryMember, CategorySky3, CategoryTVEquivalent, CategoryUnknown}

// InStudio reports whether subscriptions in this category entitle the holder
// to attend in-studio classes. Remote-only plans do not count for cohort
// acquisition or pool conversion purposes.
func (c Category) InStudio() bool {
	return c == CategoryMember || c == CategorySky3
}

// BillingCadence distinguishes annual prepaid plans from periodic
// (month-to-month) plans. Annual subscribers cannot churn mid-term, so
// several churn metrics are computed per cadence.
type BillingCadence string

const (
	CadenceAnnual   BillingCadence = "annual"
	CadencePeriodic BillingCadence = "periodic"
)

// SubscriptionState is the fixed lifecycle vocabulary for subscription rows.
// New states arriving from the ingestion pipeline that are not in this
// vocabulary are stored as StateInvalid.
type SubscriptionState string

const (
	StateActive        SubscriptionState = "active"
	StateTrialing      SubscriptionState = "trialing"
	StatePendingCancel SubscriptionState = "pending_cancel"
	StatePastDue       SubscriptionState = "past_due"
	StatePaused        SubscriptionState = "paused"
	StateCanceled      SubscriptionState = "canceled"
	StateInvalid       SubscriptionState = "invalid"
)

// ActiveLike reports whether the state counts toward the active population
// when reconstructing historical headcount. Everything short of a terminal
// cancel or an invalid row is active-like; past-due and pending-cancel rows
// are still paying members until the cancel lands.
func (s SubscriptionState) ActiveLike() bool {
	return s != StateCanceled && s != StateInvalid
}

// AtRisk reports whether the state indicates a subscription likely to churn
// soon. At-risk counts are a point-in-time snapshot, never windowed.
func (s SubscriptionState) AtRisk() bool {
	return s == StatePastDue || s == StateInvalid || s == StatePendingCancel
}

// Subscription is one row per subscription instance (not per renewal).
// A person may hold multiple concurrent subscriptions across categories;
// each counts separately for MRR but a person counts once per category for
// headcount (dedup by lower-cased email).
type Subscription struct {
	ID           string            `json:"id"`
	PlanName     string            `json:"plan_name"`
	Category     Category          `json:"category"`
	Cadence      BillingCadence    `json:"cadence"`
	PriceAmount  float64           `json:"price_amount"`
	MonthlyRate  float64           `json:"monthly_rate"`
	State        SubscriptionState `json:"state"`
	PersonEmail  string            `json:"person_email"`
	PersonName   string            `json:"person_name"`
	CreatedAt    time.Time         `json:"created_at"`
	CanceledAt   *time.Time        `json:"canceled_at,omitempty"`
}

// IdentityKey returns the canonical dedup key for the person holding this
// subscription: the lower-cased, trimmed email address.
func (s *Subscription) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(s.PersonEmail))
}

// ActiveAt reports whether the subscription was active at the given instant,
// reconstructed from event history: it must predate t and either still be in
// an active-like state or have been canceled at or after t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if !s.CreatedAt.Before(t) {
		return false
	}
	if s.State.ActiveLike() {
		return true
	}
	return s.CanceledAt != nil && !s.CanceledAt.Before(t)
}

// CanceledWithin reports whether the cancellation, if any, falls in
// [start, end).
func (s *Subscription) CanceledWithin(start, end time.Time) bool {
	if s.CanceledAt == nil {
		return false
	}
	return !s.CanceledAt.Before(start) && s.CanceledAt.Before(end)
}
