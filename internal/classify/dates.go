// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package classify

import (
	"strings"
	"time"
)

// dateLayouts lists every input shape the ingestion sources are known to
// emit, tried in order. The scraped dashboard format comes first because it
// is both the most common and the most distinctive.
var dateLayouts = []string{
	// Scraped "Weekday, M/D/YY H:MM AM/PM TZ", e.g. "Thu, 2/12/26 2:00 PM EST"
	"Mon, 1/2/06 3:04 PM MST",
	// Delimited export with numeric zone, e.g. "2024-01-28 22:46:51 -0500"
	"2006-01-02 15:04:05 -0700",
	// ISO-8601, with and without sub-seconds
	time.RFC3339Nano,
	time.RFC3339,
	// ISO timestamp without zone
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	// Bare dates
	"1/2/2006",
	"2006-01-02",
}

// Date normalizes a raw date string from any known source format into a
// time. The second return value is false when the input is empty or matches
// no known layout; callers must treat that as a missing value and skip the
// record, never fail the aggregation.
func Date(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
