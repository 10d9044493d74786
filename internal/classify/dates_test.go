// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package classify

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{"Scraped dashboard format", "Thu, 2/12/26 2:00 PM EST", true, 2026, time.February, 12},
		{"Delimited with numeric zone", "2024-01-28 22:46:51 -0500", true, 2024, time.January, 28},
		{"ISO-8601", "2024-01-28T22:46:51Z", true, 2024, time.January, 28},
		{"ISO-8601 with sub-seconds", "2024-01-28T22:46:51.123Z", true, 2024, time.January, 28},
		{"ISO without zone", "2024-01-28T22:46:51", true, 2024, time.January, 28},
		{"Bare M/D/YYYY", "3/5/2024", true, 2024, time.March, 5},
		{"Bare ISO date", "2024-03-05", true, 2024, time.March, 5},
		{"Empty string", "", false, 0, 0, 0},
		{"Garbage", "not a date at all", false, 0, 0, 0},
		{"Partial garbage", "2024-13-45", false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Date(%q) ok = %v, expected %v", tt.raw, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("Date(%q) = %v, expected %d-%02d-%02d", tt.raw, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

// TestDateDistinguishable verifies the three documented source formats parse
// to distinct instants rather than collapsing onto one another.
func TestDateDistinguishable(t *testing.T) {
	a, ok := Date("Thu, 2/12/26 2:00 PM EST")
	if !ok {
		t.Fatal("scraped format did not parse")
	}
	b, ok := Date("2024-01-28 22:46:51 -0500")
	if !ok {
		t.Fatal("delimited format did not parse")
	}
	c, ok := Date("2024-01-28T22:46:51Z")
	if !ok {
		t.Fatal("ISO format did not parse")
	}

	if a.Equal(b) || a.Equal(c) {
		t.Error("scraped date should differ from the January dates")
	}
	if b.Equal(c) {
		t.Error("zoned and UTC timestamps land on different instants")
	}
}
