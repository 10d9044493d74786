// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// BuildPacing extrapolates the current partial month's new-subscription
// activity for one category to a full-month estimate based on days elapsed.
// Returns nil when the category has no events.
func BuildPacing(subs []models.Subscription, category models.Category, now time.Time) *models.PacingBlock {
	catSubs := byCategory(subs, category)
	if len(catSubs) == 0 {
		return nil
	}

	start := monthStart(now)
	end := start.AddDate(0, 1, 0)

	block := &models.PacingBlock{
		MonthStart:  start,
		DaysElapsed: now.Day(),
		DaysInMonth: daysBetween(start, end),
	}

	var newMRR float64
	for i := range catSubs {
		s := &catSubs[i]
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			block.ActualNew++
			newMRR += s.MonthlyRate
		}
		if s.CanceledWithin(start, end) {
			block.ActualChurned++
		}
	}
	block.ActualNewMRR = round2(newMRR)

	// Day one reads as a full elapsed day; on the 1st the pace is simply
	// 31x the day's actuals, which is noisy but honest.
	factor := float64(block.DaysInMonth) / float64(block.DaysElapsed)
	block.PacedNewMRR = round2(newMRR * factor)
	block.PacedNew = round1(float64(block.ActualNew) * factor)
	return block
}
