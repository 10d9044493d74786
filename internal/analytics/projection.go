// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"time"

	"github.com/studiopulse/studiopulse/internal/logging"
	"github.com/studiopulse/studiopulse/internal/metrics"
	"github.com/studiopulse/studiopulse/internal/models"
)

// ProjectionParams are the empirically chosen projection guardrails. The
// cap and clamp ratios were tuned against historical data, not derived;
// they are configuration, not constants.
type ProjectionParams struct {
	GrowthWindowMonths int
	MultiplierCap      float64
	SanityCapRatio     float64
	ClampRatio         float64
}

// BuildProjection produces the annual revenue projection for the whole book
// of subscriptions, reconciled against prior-year revenue period summaries.
//
// Historical MRR is reconstructed by backtracking: starting from the
// current total and walking completed months in reverse, subtracting each
// month's new MRR and adding back its churned MRR. This avoids any
// dependence on stored point-in-time snapshots.
//
// Returns nil when there is neither subscription history nor prior-year
// revenue data. When only prior-year revenue exists the result is Degraded:
// prior-year fields populated, MRR and growth fields zero.
func BuildProjection(subs []models.Subscription, revenue []models.RevenuePeriod, now time.Time, params ProjectionParams) *models.ProjectionResult {
	priorYear := now.Year() - 1
	actualPrior := ReconcilePriorYearRevenue(revenue, priorYear)

	if len(subs) == 0 {
		if actualPrior == 0 {
			return nil
		}
		logging.Warn().Int("prior_year", priorYear).
			Msg("projection degraded: prior-year revenue present but no subscription history")
		return &models.ProjectionResult{
			PriorYearActualRevenue: round2(actualPrior),
			NonMRRMultiplier:       1.0,
			Degraded:               true,
		}
	}

	var currentMRR float64
	for i := range subs {
		if subs[i].ActiveAt(now) {
			currentMRR += subs[i].MonthlyRate
		}
	}

	history := backtrackMRR(subs, currentMRR, now, priorYear)
	growth := growthRate(history, params.GrowthWindowMonths)

	// The MRR-based prior-year estimate is the sum of the reconstructed
	// monthly values for that year.
	var estimatePrior float64
	for _, p := range history {
		if len(p.Label) >= 4 && p.Label[:4] == yearLabel(priorYear) {
			estimatePrior += p.MRR
		}
	}

	multiplier, capped := nonMRRMultiplier(actualPrior, estimatePrior, params.MultiplierCap)

	result := &models.ProjectionResult{
		CurrentMRR:             round2(currentMRR),
		History:                history,
		MonthlyGrowthPct:       round1(growth * 100),
		PriorYearRevenue:       round2(estimatePrior),
		PriorYearActualRevenue: round2(actualPrior),
		NonMRRMultiplier:       round2(multiplier),
		MultiplierCapped:       capped,
	}

	projected := annualProjection(history, currentMRR, growth, now) * multiplier
	if actualPrior > 0 && projected > params.SanityCapRatio*actualPrior {
		clamped := params.ClampRatio * actualPrior
		logging.Warn().
			Float64("raw_projected", projected).
			Float64("clamped_to", clamped).
			Float64("prior_year_actual", actualPrior).
			Msg("projection exceeded sanity cap, clamping")
		metrics.ProjectionClamps.Inc()
		result.RawProjected = round2(projected)
		result.Clamped = true
		projected = clamped
	}
	result.ProjectedRevenue = round2(projected)
	return result
}

// backtrackMRR reconstructs the monthly MRR series from the start of the
// prior year through the last completed month, oldest first. Each point is
// the MRR at that month's close.
func backtrackMRR(subs []models.Subscription, currentMRR float64, now time.Time, priorYear int) []models.MRRPoint {
	first := time.Date(priorYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	cur := monthStart(now)

	// Per-month new and churned MRR, keyed by month start.
	newMRR := make(map[time.Time]float64)
	churnedMRR := make(map[time.Time]float64)
	for i := range subs {
		s := &subs[i]
		newMRR[monthStart(s.CreatedAt)] += s.MonthlyRate
		if s.CanceledAt != nil {
			churnedMRR[monthStart(*s.CanceledAt)] += s.MonthlyRate
		}
	}

	// Walk backwards from the current month, undoing each month's movement.
	// Entering the loop, mrr holds the value at the current month's start,
	// which is the previous month's close.
	var reversed []models.MRRPoint
	mrr := currentMRR - newMRR[cur] + churnedMRR[cur]
	for m := cur.AddDate(0, -1, 0); !m.Before(first); m = m.AddDate(0, -1, 0) {
		reversed = append(reversed, models.MRRPoint{Label: monthLabel(m), MRR: round2(mrr)})
		mrr = mrr - newMRR[m] + churnedMRR[m]
	}

	history := make([]models.MRRPoint, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		history = append(history, reversed[i])
	}
	return history
}

// growthRate estimates the mean month-over-month fractional MRR delta over
// the trailing window. Steps with a zero prior value are skipped rather
// than producing an infinite ratio.
func growthRate(history []models.MRRPoint, window int) float64 {
	start := len(history) - window
	if start < 1 {
		start = 1
	}
	var deltas []float64
	for i := start; i < len(history); i++ {
		prev := history[i-1].MRR
		if prev == 0 {
			continue
		}
		deltas = append(deltas, (history[i].MRR-prev)/prev)
	}
	return mean(deltas)
}

// nonMRRMultiplier scales the MRR projection for revenue the subscription
// ledger cannot see. Floored at 1.0 and capped against degenerate inputs
// such as an empty subscription history against real revenue.
func nonMRRMultiplier(actual, estimate, cap float64) (multiplier float64, capped bool) {
	if actual <= 0 || estimate <= 0 {
		return 1.0, false
	}
	raw := actual / estimate
	if raw < 1.0 {
		return 1.0, false
	}
	if raw > cap {
		logging.Warn().
			Float64("raw_multiplier", raw).
			Float64("cap", cap).
			Msg("non-MRR multiplier exceeded cap")
		return cap, true
	}
	return raw, false
}

// annualProjection sums the year's completed-month MRR, takes the current
// MRR as the partial month's run-rate estimate, then compounds the
// remaining months at the estimated growth rate.
func annualProjection(history []models.MRRPoint, currentMRR, growth float64, now time.Time) float64 {
	yr := yearLabel(now.Year())
	var total float64
	for _, p := range history {
		if len(p.Label) >= 4 && p.Label[:4] == yr {
			total += p.MRR
		}
	}
	total += currentMRR

	m := currentMRR
	for remaining := 12 - int(now.Month()); remaining > 0; remaining-- {
		m *= 1 + growth
		total += m
	}
	return total
}

// ReconcilePriorYearRevenue resolves the prior-year actual from revenue
// period summaries. A single row spanning the whole year wins outright;
// summing it with monthly rows for the same year would double-count.
// Without a full-year row, monthly rows are summed and annualized by
// covered months.
func ReconcilePriorYearRevenue(revenue []models.RevenuePeriod, year int) float64 {
	var fullYearSum, monthlySum float64
	haveFullYear := false
	coveredMonths := 0
	for i := range revenue {
		r := &revenue[i]
		if r.PeriodStart.Year() != year {
			continue
		}
		if r.FullYear() {
			fullYearSum += r.Net
			haveFullYear = true
			continue
		}
		monthlySum += r.Net
		coveredMonths += r.SpansMonths()
	}
	if haveFullYear {
		return fullYearSum
	}
	if coveredMonths == 0 {
		return 0
	}
	if coveredMonths >= 12 {
		return monthlySum
	}
	return monthlySum / float64(coveredMonths) * 12
}

func yearLabel(year int) string {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}
