// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

func TestCohortConversionWindows(t *testing.T) {
	// Ten people acquired in the week of Monday June 1: three convert on
	// day 5, one more on day 15, the rest never do.
	acquired := ts(2026, time.June, 1)
	firstVisit := make(map[string]time.Time)
	var subs []models.Subscription
	for i := 0; i < 10; i++ {
		email := fmt.Sprintf("p%d@x.com", i)
		firstVisit[email] = acquired
		switch {
		case i < 3:
			subs = append(subs, member(email, 150, acquired.AddDate(0, 0, 5)))
		case i == 3:
			subs = append(subs, member(email, 150, acquired.AddDate(0, 0, 15)))
		}
	}

	report := BuildCohortReport(firstVisit, subs, ts(2026, time.August, 1), 20)
	if report == nil {
		t.Fatal("expected a report")
	}
	if len(report.Cohorts) != 1 {
		t.Fatalf("expected 1 cohort, got %d", len(report.Cohorts))
	}

	c := report.Cohorts[0]
	if c.Size != 10 {
		t.Errorf("size = %d, expected 10", c.Size)
	}
	if c.Week1 != 3 || c.Week2 != 0 || c.Week3 != 1 {
		t.Errorf("windows = %d/%d/%d, expected 3/0/1", c.Week1, c.Week2, c.Week3)
	}
	if c.Total3W != 4 {
		t.Errorf("total = %d, expected 4", c.Total3W)
	}
	if c.ConvPct != 40.0 {
		t.Errorf("conversion = %v, expected 40.0", c.ConvPct)
	}
	if !c.Complete {
		t.Error("cohort older than the maturity window must be complete")
	}
	if report.AvgConvPct != 40.0 {
		t.Errorf("avg conversion = %v, expected 40.0", report.AvgConvPct)
	}
}

func TestCohortImmatureExcludedFromAverages(t *testing.T) {
	now := ts(2026, time.August, 1)
	firstVisit := map[string]time.Time{
		"mature@x.com": ts(2026, time.June, 1),
		"young@x.com":  ts(2026, time.July, 28),
	}
	subs := []models.Subscription{
		member("mature@x.com", 150, ts(2026, time.June, 3)),
		member("young@x.com", 150, ts(2026, time.July, 30)),
	}

	report := BuildCohortReport(firstVisit, subs, now, 20)
	if len(report.Cohorts) != 2 {
		t.Fatalf("expected 2 cohorts, got %d", len(report.Cohorts))
	}
	if report.CompleteCohorts != 1 {
		t.Fatalf("complete cohorts = %d, expected 1", report.CompleteCohorts)
	}
	// Only the mature cohort (100% converted) feeds the averages.
	if report.AvgConvPct != 100.0 {
		t.Errorf("avg conversion = %v, expected 100.0 from the mature cohort alone", report.AvgConvPct)
	}
	for _, c := range report.Cohorts {
		if c.WeekStart.Equal(ts(2026, time.July, 27)) && c.Complete {
			t.Error("five-day-old cohort must not be complete")
		}
	}
}

func TestCohortSubscriptionBeforeVisitNotCounted(t *testing.T) {
	firstVisit := map[string]time.Time{"early@x.com": ts(2026, time.June, 10)}
	subs := []models.Subscription{member("early@x.com", 150, ts(2026, time.June, 1))}

	report := BuildCohortReport(firstVisit, subs, ts(2026, time.August, 1), 20)
	if report.Cohorts[0].Total3W != 0 {
		t.Error("a subscription predating the first visit is not a cohort conversion")
	}
}

func TestCohortNilWithoutAcquisitions(t *testing.T) {
	if report := BuildCohortReport(nil, nil, ts(2026, time.August, 1), 20); report != nil {
		t.Error("expected nil report with no acquisition dates")
	}
}
