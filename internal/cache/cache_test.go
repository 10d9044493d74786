// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 42)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit for freshly set key")
	}
	if got.(int) != 42 {
		t.Errorf("Get returned %v, expected 42", got)
	}
}

func TestMiss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("k", "v", -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCleanup(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("dead", "v", -time.Second)
	c.Set("live", "v")

	if evicted := c.Cleanup(); evicted != 1 {
		t.Errorf("Cleanup evicted %d entries, expected 1", evicted)
	}
	if _, ok := c.Get("live"); !ok {
		t.Error("live entry must survive cleanup")
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if stats := c.GetStats(); stats.TotalKeys != 0 {
		t.Errorf("TotalKeys after Clear = %d, expected 0", stats.TotalKeys)
	}
}

func TestStatsAndHitRate(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")
	c.Get("k")
	c.Get("nope")

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, expected 1 hit and 1 miss", stats)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate = %v, expected 50", rate)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		Sections []string
		Weeks    int
	}
	a := GenerateKey("Dashboard", params{Sections: []string{"churn"}, Weeks: 12})
	b := GenerateKey("Dashboard", params{Sections: []string{"churn"}, Weeks: 12})
	if a != b {
		t.Error("identical parameters must produce identical keys")
	}

	c := GenerateKey("Dashboard", params{Sections: []string{"pool"}, Weeks: 12})
	if a == c {
		t.Error("different parameters must produce different keys")
	}
}
