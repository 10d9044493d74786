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

// personHistory collects one person's qualifying (non-subscriber,
// in-studio) visits in ascending attendance order, plus their first
// in-studio subscription start when one exists.
type personHistory struct {
	visits    []models.Visit
	firstSub  time.Time
	converted bool
}

// visitsBefore counts qualifying visits strictly before t.
func (p *personHistory) visitsBefore(t time.Time) int {
	n := 0
	for i := range p.visits {
		if !p.visits[i].AttendedAt.Before(t) {
			break
		}
		n++
	}
	return n
}

// visitedWithin reports whether the person has a qualifying visit in
// [start, end), and how many.
func (p *personHistory) visitedWithin(start, end time.Time) int {
	n := 0
	for i := range p.visits {
		at := p.visits[i].AttendedAt
		if at.Before(start) {
			continue
		}
		if !at.Before(end) {
			break
		}
		n++
	}
	return n
}

// BuildPoolReport produces the non-subscriber conversion pool: per-slice
// weekly pool sizes and conversion rates over a trailing window of weeks
// (oldest first, current partial week last), the week-to-date pool at 7 and
// 30 day windows, and conversion lag statistics over the completed weeks.
//
// visits must be the qualifying subset: in-studio visits not covered by an
// active subscription. A week's converts are pool members whose first
// in-studio subscription began that week after at least one qualifying
// visit, which keeps subscribers with an unrelated later drop-in out of
// the funnel. Returns nil when there are no qualifying visits.
func BuildPoolReport(visits []models.Visit, subs []models.Subscription, now time.Time, trailingWeeks int) *models.PoolReport {
	people := buildHistories(visits, subs)
	if len(people) == 0 {
		return nil
	}

	curWeek := weekStart(now)
	report := &models.PoolReport{}

	for _, slice := range models.PoolSlices {
		sr := models.PoolSliceReport{Slice: slice}
		for i := trailingWeeks - 1; i >= 0; i-- {
			start := curWeek.AddDate(0, 0, -7*i)
			end := start.AddDate(0, 0, 7)
			sr.Weeks = append(sr.Weeks, poolWeek(people, slice, start, end))
		}
		report.Slices = append(report.Slices, sr)
	}

	report.CurrentPool7d = currentPool(people, now.AddDate(0, 0, -7), now)
	report.CurrentPool30d = currentPool(people, now.AddDate(0, 0, -30), now)
	report.Lag = lagStats(people, curWeek.AddDate(0, 0, -7*trailingWeeks), curWeek)
	return report
}

// buildHistories indexes qualifying visits and first subscription starts
// per person, visits sorted ascending.
func buildHistories(visits []models.Visit, subs []models.Subscription) map[string]*personHistory {
	people := make(map[string]*personHistory)
	for i := range visits {
		v := &visits[i]
		key := v.IdentityKey()
		if key == "" {
			continue
		}
		p, ok := people[key]
		if !ok {
			p = &personHistory{}
			people[key] = p
		}
		p.visits = append(p.visits, *v)
	}
	for _, p := range people {
		sort.Slice(p.visits, func(i, j int) bool {
			return p.visits[i].AttendedAt.Before(p.visits[j].AttendedAt)
		})
	}

	for email, at := range firstInStudioSubscription(subs) {
		if p, ok := people[email]; ok {
			p.firstSub = at
			p.converted = true
		}
	}
	return people
}

// inSlice reports whether the person belongs to a pool slice during
// [start, end). High intent means two or more qualifying visits in the 30
// days ending at the week's end.
func inSlice(p *personHistory, slice models.PoolSlice, start, end time.Time) bool {
	switch slice {
	case models.PoolAll:
		return true
	case models.PoolHighIntent:
		return p.visitedWithin(end.AddDate(0, 0, -30), end) >= 2
	}
	kind := sliceKind(slice)
	for i := range p.visits {
		at := p.visits[i].AttendedAt
		if at.Before(start) || !at.Before(end) {
			continue
		}
		if p.visits[i].Kind == kind {
			return true
		}
	}
	return false
}

func sliceKind(slice models.PoolSlice) models.VisitKind {
	switch slice {
	case models.PoolDropIn:
		return models.VisitDropIn
	case models.PoolIntroWeek:
		return models.VisitIntroWeek
	case models.PoolClassPack:
		return models.VisitClassPack
	}
	return models.VisitOther
}

// poolWeek computes one week's row for one slice.
func poolWeek(people map[string]*personHistory, slice models.PoolSlice, start, end time.Time) models.PoolWeekRow {
	row := models.PoolWeekRow{WeekStart: start, Label: weekLabel(start)}
	for _, p := range people {
		if p.visitedWithin(start, end) == 0 || !inSlice(p, slice, start, end) {
			continue
		}
		row.PoolSize++
		if p.converted && !p.firstSub.Before(start) && p.firstSub.Before(end) && p.visitsBefore(p.firstSub) > 0 {
			row.Converts++
		}
	}
	row.ConvPct = round1(ratePct(float64(row.Converts), float64(row.PoolSize)))
	return row
}

// currentPool counts distinct people with a qualifying visit in [start, end)
// who have not yet converted.
func currentPool(people map[string]*personHistory, start, end time.Time) int {
	n := 0
	for _, p := range people {
		if p.converted && p.firstSub.Before(end) {
			continue
		}
		if p.visitedWithin(start, end) > 0 {
			n++
		}
	}
	return n
}

var lagDayBuckets = []struct {
	label string
	max   int
}{
	{"0-7 days", 7},
	{"8-14 days", 14},
	{"15-30 days", 30},
	{"31-60 days", 60},
	{"61+ days", 1 << 30},
}

var lagVisitBuckets = []struct {
	label string
	max   int
}{
	{"1 visit", 1},
	{"2-3 visits", 3},
	{"4-6 visits", 6},
	{"7+ visits", 1 << 30},
}

// lagStats summarizes days-to-convert and visits-before-convert for people
// whose first subscription landed inside [start, end). The current partial
// week stays outside the window so a quiet Monday morning cannot zero out
// the figures.
func lagStats(people map[string]*personHistory, start, end time.Time) *models.LagStats {
	stats := &models.LagStats{
		DayBuckets:   make([]models.LagBucket, len(lagDayBuckets)),
		VisitBuckets: make([]models.LagBucket, len(lagVisitBuckets)),
	}
	for i, b := range lagDayBuckets {
		stats.DayBuckets[i].Label = b.label
	}
	for i, b := range lagVisitBuckets {
		stats.VisitBuckets[i].Label = b.label
	}

	var days, visitCounts []float64
	for _, p := range people {
		if !p.converted || p.firstSub.Before(start) || !p.firstSub.Before(end) {
			continue
		}
		prior := p.visitsBefore(p.firstSub)
		if prior == 0 {
			continue
		}
		lag := daysBetween(p.visits[0].AttendedAt, p.firstSub)
		if lag < 0 {
			continue
		}
		stats.Conversions++
		days = append(days, float64(lag))
		visitCounts = append(visitCounts, float64(prior))

		for i, b := range lagDayBuckets {
			if lag <= b.max {
				stats.DayBuckets[i].Count++
				break
			}
		}
		for i, b := range lagVisitBuckets {
			if prior <= b.max {
				stats.VisitBuckets[i].Count++
				break
			}
		}
	}

	if stats.Conversions == 0 {
		return nil
	}
	stats.MedianDaysToConv = round1(median(days))
	stats.AvgVisitsBeforeConv = round1(mean(visitCounts))
	return stats
}
