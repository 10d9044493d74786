// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// BuildChurnReport reconstructs monthly churn for one category from raw
// subscription events. The active population for each month is computed
// as of the month start by replaying created/canceled timestamps, so the
// report is reproducible from history alone. Returns nil when the
// category has no events.
func BuildChurnReport(subs []models.Subscription, category models.Category, now time.Time, trailingMonths int) *models.ChurnReport {
	catSubs := byCategory(subs, category)
	if len(catSubs) == 0 {
		return nil
	}

	report := &models.ChurnReport{Category: category}
	cur := monthStart(now)

	for i := trailingMonths; i >= 0; i-- {
		start := cur.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		partial := i == 0

		entry := churnMonth(catSubs, start, end, partial)
		report.Months = append(report.Months, entry)

		if category == models.CategoryMember {
			report.ByCadence = append(report.ByCadence, cadenceMonth(catSubs, start, end, partial))
		}
	}

	report.AvgUserChurnPct, report.AvgMRRChurnPct = trailingChurnAverages(report.Months)
	if category == models.CategoryMember {
		var eligible []float64
		for _, m := range report.ByCadence {
			if !m.Partial {
				eligible = append(eligible, m.EligibleChurnPct)
			}
		}
		report.AvgEligibleChurnPct = round1(mean(eligible))
	}

	for i := range catSubs {
		if catSubs[i].State.AtRisk() {
			report.AtRisk++
		}
	}
	return report
}

// churnMonth computes one month's entry. Headcounts dedup by person;
// MRR sums count every subscription row.
func churnMonth(subs []models.Subscription, start, end time.Time, partial bool) models.ChurnMonthEntry {
	activeEmails := make(map[string]struct{})
	canceledEmails := make(map[string]struct{})
	var activeMRR, canceledMRR float64

	for i := range subs {
		s := &subs[i]
		if s.ActiveAt(start) {
			activeMRR += s.MonthlyRate
			if key := s.IdentityKey(); key != "" {
				activeEmails[key] = struct{}{}
			}
		}
		if s.CanceledWithin(start, end) {
			canceledMRR += s.MonthlyRate
			if key := s.IdentityKey(); key != "" {
				canceledEmails[key] = struct{}{}
			}
		}
	}

	return models.ChurnMonthEntry{
		MonthStart:    start,
		Label:         monthLabel(start),
		ActiveAtStart: len(activeEmails),
		ActiveMRR:     round2(activeMRR),
		Canceled:      len(canceledEmails),
		CanceledMRR:   round2(canceledMRR),
		UserChurnPct:  round1(ratePct(float64(len(canceledEmails)), float64(len(activeEmails)))),
		MRRChurnPct:   round1(ratePct(canceledMRR, activeMRR)),
		Partial:       partial,
	}
}

// cadenceMonth splits a month's churn by billing cadence. Annual and
// periodic populations are tallied separately; the eligible rate uses only
// periodic subscriptions on both sides of the division.
func cadenceMonth(subs []models.Subscription, start, end time.Time, partial bool) models.CadenceChurn {
	m := models.CadenceChurn{
		MonthStart: start,
		Label:      monthLabel(start),
		Partial:    partial,
	}

	var annualMRR, annualLost, periodicMRR, periodicLost float64
	for i := range subs {
		s := &subs[i]
		annual := s.Cadence == models.CadenceAnnual
		if s.ActiveAt(start) {
			if annual {
				m.AnnualActive++
				annualMRR += s.MonthlyRate
			} else {
				m.PeriodicActive++
				periodicMRR += s.MonthlyRate
			}
		}
		if s.CanceledWithin(start, end) {
			if annual {
				m.AnnualCanceled++
				annualLost += s.MonthlyRate
			} else {
				m.PeriodicCanceled++
				periodicLost += s.MonthlyRate
			}
		}
	}

	m.AnnualMRR = round2(annualMRR)
	m.AnnualMRRLost = round2(annualLost)
	m.PeriodicMRR = round2(periodicMRR)
	m.PeriodicMRRLost = round2(periodicLost)
	m.AnnualChurnPct = round1(ratePct(float64(m.AnnualCanceled), float64(m.AnnualActive)))
	m.PeriodicChurnPct = round1(ratePct(float64(m.PeriodicCanceled), float64(m.PeriodicActive)))
	m.EligibleChurnPct = round1(ratePct(float64(m.PeriodicCanceled), float64(m.PeriodicActive)))
	return m
}

// trailingChurnAverages averages user and MRR churn over completed months.
func trailingChurnAverages(months []models.ChurnMonthEntry) (userPct, mrrPct float64) {
	var users, mrrs []float64
	for _, m := range months {
		if m.Partial {
			continue
		}
		users = append(users, m.UserChurnPct)
		mrrs = append(mrrs, m.MRRChurnPct)
	}
	return round1(mean(users)), round1(mean(mrrs))
}
