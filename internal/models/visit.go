// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package models

import (
	"strings"
	"time"
)

// VisitKind classifies a visit event by the pass that covered it, derived
// from the free-text pass label at ingest time.
type VisitKind string

const (
	VisitDropIn       VisitKind = "drop_in"
	VisitIntroWeek    VisitKind = "intro_week"
	VisitGuest        VisitKind = "guest"
	VisitClassPack    VisitKind = "class_pack"
	VisitSubscription VisitKind = "subscription"
	VisitRemote       VisitKind = "remote"
	VisitOther        VisitKind = "other"
)

// InStudio reports whether the visit kind represents physical attendance.
// Remote/video visits never establish an acquisition date.
func (k VisitKind) InStudio() bool {
	return k != VisitRemote
}

// Visit is one row per attended class or session.
type Visit struct {
	ID              string    `json:"id"`
	PersonEmail     string    `json:"person_email"`
	PassLabel       string    `json:"pass_label"`
	Kind            VisitKind `json:"kind"`
	AttendedAt      time.Time `json:"attended_at"`
	SubscriberVisit bool      `json:"subscriber_visit"`
}

// IdentityKey returns the canonical dedup key for the visitor.
func (v *Visit) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(v.PersonEmail))
}

// NonSubscriber reports whether the visit qualifies the person for the
// conversion pool: attended in studio without subscription coverage.
func (v *Visit) NonSubscriber() bool {
	return !v.SubscriberVisit && v.Kind.InStudio()
}
