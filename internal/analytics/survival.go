// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"sort"
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// tenureObservation is one subscriber's time-on-book in months. Censored
// observations are subscribers still active as of now; they leave the risk
// set without counting as a churn event.
type tenureObservation struct {
	months   float64
	censored bool
}

// BuildTenureSummary estimates the tenure survival curve for one category
// using the Kaplan-Meier product-limit estimator, which handles censored
// observations correctly where a naive "percent still here" average would
// understate retention. Returns nil when the category has no observations.
func BuildTenureSummary(subs []models.Subscription, category models.Category, now time.Time, horizonMonths int) *models.TenureSummary {
	obs := tenureObservations(subs, category, now)
	if len(obs) == 0 {
		return nil
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].months < obs[j].months })

	summary := &models.TenureSummary{SampleSize: len(obs)}

	// Product-limit walk across integer month marks. Every observation with
	// tenure below the mark has left the risk set by then; only uncensored
	// exits shrink the survival estimate.
	n := len(obs)
	survival := 1.0
	next := 0
	medianMark := 0.0
	for mark := 1; mark <= horizonMonths; mark++ {
		for next < len(obs) && obs[next].months < float64(mark) {
			if !obs[next].censored && n > 0 {
				survival *= float64(n-1) / float64(n)
			}
			n--
			next++
		}
		summary.Curve = append(summary.Curve, models.SurvivalPoint{
			Month:       mark,
			RetainedPct: round1(survival * 100),
			AtRisk:      n,
		})
		if medianMark == 0 && survival < 0.5 {
			medianMark = float64(mark)
		}
	}

	if medianMark > 0 {
		summary.MedianTenureMonths = medianMark
	} else {
		// Curve never crossed 50% inside the horizon; fall back to the raw
		// sample median.
		tenures := make([]float64, len(obs))
		for i, o := range obs {
			tenures[i] = o.months
		}
		summary.MedianTenureMonths = round1(median(tenures))
	}

	summary.Month4RenewalPct, summary.AvgTenurePastCliff = commitmentCliff(obs)
	return summary
}

// commitmentCliff reports conditional survival past the minimum-commitment
// window: of the people who reached month 3, how many also reached month 4,
// and how long the survivors stayed on average.
func commitmentCliff(obs []tenureObservation) (renewalPct, avgTenure float64) {
	reached3, reached4 := 0, 0
	var pastCliff []float64
	for _, o := range obs {
		if o.months >= 3 {
			reached3++
		}
		if o.months >= 4 {
			reached4++
			pastCliff = append(pastCliff, o.months)
		}
	}
	return round1(ratePct(float64(reached4), float64(reached3))), round1(mean(pastCliff))
}

// tenureObservations extracts one observation per subscription row with a
// known creation date. A missing cancellation date marks the observation
// censored at now.
func tenureObservations(subs []models.Subscription, category models.Category, now time.Time) []tenureObservation {
	var obs []tenureObservation
	for i := range subs {
		s := &subs[i]
		if s.Category != category || s.CreatedAt.IsZero() {
			continue
		}
		end := now
		censored := true
		if s.CanceledAt != nil && s.CanceledAt.Before(now) {
			end = *s.CanceledAt
			censored = false
		}
		if end.Before(s.CreatedAt) {
			continue
		}
		obs = append(obs, tenureObservation{months: tenureMonths(s.CreatedAt, end), censored: censored})
	}
	return obs
}
