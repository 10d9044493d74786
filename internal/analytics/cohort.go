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

// BuildCohortReport groups people into weekly acquisition cohorts by their
// earliest in-studio visit and tracks conversion to an in-studio
// subscription inside the three week-windows after acquisition. A cohort
// only contributes to the averages once its full maturity window has
// elapsed, otherwise young cohorts drag the averages down. Returns nil
// when no acquisition dates exist.
//
// firstVisit maps identity key to earliest in-studio visit date; remote
// visits must already be excluded by the loader.
func BuildCohortReport(firstVisit map[string]time.Time, subs []models.Subscription, now time.Time, maturityDays int) *models.CohortReport {
	if len(firstVisit) == 0 {
		return nil
	}

	firstSub := firstInStudioSubscription(subs)

	rows := make(map[time.Time]*models.CohortRow)
	for email, acquired := range firstVisit {
		ws := weekStart(acquired)
		row, ok := rows[ws]
		if !ok {
			row = &models.CohortRow{WeekStart: ws, Label: weekLabel(ws)}
			rows[ws] = row
		}
		row.Size++

		subAt, converted := firstSub[email]
		if !converted {
			continue
		}
		lag := daysBetween(acquired, subAt)
		switch {
		case lag < 0:
			// Subscribed before first recorded visit; not a cohort conversion.
		case lag <= 6:
			row.Week1++
		case lag <= 13:
			row.Week2++
		case lag <= 20:
			row.Week3++
		}
	}

	report := &models.CohortReport{}
	var convPcts, week1s, total3Ws []float64
	for _, row := range rows {
		row.Total3W = row.Week1 + row.Week2 + row.Week3
		row.ConvPct = round1(ratePct(float64(row.Total3W), float64(row.Size)))
		row.Complete = daysBetween(row.WeekStart, now) >= maturityDays
		if row.Complete {
			report.CompleteCohorts++
			convPcts = append(convPcts, row.ConvPct)
			week1s = append(week1s, float64(row.Week1))
			total3Ws = append(total3Ws, float64(row.Total3W))
		}
		report.Cohorts = append(report.Cohorts, *row)
	}
	sort.Slice(report.Cohorts, func(i, j int) bool {
		return report.Cohorts[i].WeekStart.Before(report.Cohorts[j].WeekStart)
	})

	report.AvgConvPct = round1(mean(convPcts))
	report.AvgWeek1 = round1(mean(week1s))
	report.AvgTotal3W = round1(mean(total3Ws))
	return report
}
