// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package classify

import (
	"math"
	"strings"

	"github.com/studiopulse/studiopulse/internal/models"
)

// Plan classifies a free-text plan name into a category and billing cadence.
// Matching is keyword-based and case-insensitive; names matching nothing map
// to CategoryUnknown with periodic cadence.
//
// Keyword precedence matters: "SKY3 Annual" is a Sky3 plan, and "SKYTV
// Membership" is a TV plan even though it also mentions membership, because
// the narrower product keywords are checked first.
func Plan(planName string) (models.Category, models.BillingCadence) {
	name := strings.ToLower(planName)

	cadence := models.CadencePeriodic
	if containsAny(name, "annual", "yearly", "12 month", "12-month", "year") {
		cadence = models.CadenceAnnual
	}

	switch {
	case containsAny(name, "sky3", "sky 3", "sky-3"):
		return models.CategorySky3, cadence
	case containsAny(name, "tv", "video", "livestream", "live-stream", "online", "digital", "virtual"):
		return models.CategoryTVEquivalent, cadence
	case containsAny(name, "member", "unlimited", "all access", "all-access"):
		return models.CategoryMember, cadence
	default:
		return models.CategoryUnknown, cadence
	}
}

// MonthlyRate converts a plan price to its monthly-equivalent rate: annual
// prices divide by twelve (rounded to cents), periodic prices pass through.
func MonthlyRate(price float64, cadence models.BillingCadence) float64 {
	if cadence == models.CadenceAnnual {
		return math.Round(price/12*100) / 100
	}
	return price
}

// Visit classifies a free-text pass label into a visit kind. Remote labels
// are checked first because remote visits are excluded from acquisition
// dating regardless of what pass covered them.
func Visit(passLabel string) models.VisitKind {
	label := strings.ToLower(passLabel)

	switch {
	case containsAny(label, "video", "livestream", "live-stream", "online", "virtual", "tv", "remote"):
		return models.VisitRemote
	case containsAny(label, "intro"):
		return models.VisitIntroWeek
	case containsAny(label, "drop"):
		return models.VisitDropIn
	case containsAny(label, "guest", "comp", "friend"):
		return models.VisitGuest
	case containsAny(label, "pack", "class card", "5 class", "10 class", "punch"):
		return models.VisitClassPack
	case containsAny(label, "member", "subscription", "unlimited", "sky3", "auto-renew", "autorenew"):
		return models.VisitSubscription
	default:
		return models.VisitOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
