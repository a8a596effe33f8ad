package main

import "testing"

func TestRecordRound(t *testing.T) {
	stats := TierStats{Requested: 10, MinPlaced: 10}

	stats = recordRound(stats, 8)
	stats = recordRound(stats, 10)
	stats = recordRound(stats, 2)

	if stats.Rounds != 3 {
		t.Errorf("expected 3 rounds, got %d", stats.Rounds)
	}
	if stats.TotalPlaced != 20 {
		t.Errorf("expected 20 total placed, got %d", stats.TotalPlaced)
	}
	if stats.MinPlaced != 2 {
		t.Errorf("expected min 2, got %d", stats.MinPlaced)
	}
	if stats.MaxPlaced != 10 {
		t.Errorf("expected max 10, got %d", stats.MaxPlaced)
	}
	if stats.Unplayable != 1 {
		t.Errorf("expected 1 unplayable round, got %d", stats.Unplayable)
	}
}

func TestTierStatsRatios(t *testing.T) {
	t.Run("empty stats report zero", func(t *testing.T) {
		var stats TierStats
		if got := stats.AveragePlaced(); got != 0 {
			t.Errorf("expected 0 average, got %f", got)
		}
		if got := stats.PlacementRate(); got != 0 {
			t.Errorf("expected 0 rate, got %f", got)
		}
	})

	t.Run("averages over rounds", func(t *testing.T) {
		stats := TierStats{Requested: 10, Rounds: 4, TotalPlaced: 30}
		if got := stats.AveragePlaced(); got != 7.5 {
			t.Errorf("expected 7.5 average, got %f", got)
		}
		if got := stats.PlacementRate(); got != 0.75 {
			t.Errorf("expected 0.75 rate, got %f", got)
		}
	})
}

func TestAnalyzeTier(t *testing.T) {
	stats := analyzeTier("animals", "easy", 20)

	if stats.Rounds != 20 {
		t.Fatalf("expected 20 rounds, got %d", stats.Rounds)
	}
	if stats.Requested != 10 || stats.GridSize != 12 {
		t.Errorf("unexpected tier: requested=%d grid=%d", stats.Requested, stats.GridSize)
	}
	if stats.TotalPlaced == 0 {
		t.Error("expected some words to place")
	}
	if stats.MaxPlaced > stats.Requested {
		t.Errorf("placed %d words but only requested %d", stats.MaxPlaced, stats.Requested)
	}
}
