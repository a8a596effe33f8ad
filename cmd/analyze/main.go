// Command analyze prints quick, human-readable heuristics about puzzle
// generation. For every category and difficulty tier it runs a batch of
// seeded generations and summarizes how many of the requested words actually
// place, flagging tiers that routinely fall below a playable word count.
package main

import (
	"fmt"
	"math/rand"

	"github.com/wordrace/wordrace/game/grid"
	"github.com/wordrace/wordrace/game/words"
)

// rounds is the number of seeded generations per tier.
const rounds = 200

// playableMinimum mirrors the lobby's minimum placed-word requirement.
const playableMinimum = 3

// TierStats summarizes a batch of generations for one category/difficulty.
type TierStats struct {
	Category   string
	Difficulty string
	Requested  int
	GridSize   int

	Rounds      int
	TotalPlaced int
	MinPlaced   int
	MaxPlaced   int
	Unplayable  int // rounds below playableMinimum
}

// AveragePlaced returns the mean placed-word count per round.
func (s TierStats) AveragePlaced() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.TotalPlaced) / float64(s.Rounds)
}

// PlacementRate returns placed words as a fraction of requested words.
func (s TierStats) PlacementRate() float64 {
	requested := s.Requested * s.Rounds
	if requested == 0 {
		return 0
	}
	return float64(s.TotalPlaced) / float64(requested)
}

func main() {
	for _, category := range words.Categories() {
		fmt.Printf("\n=== Analyzing category %s ===\n", category)
		for _, difficulty := range words.Difficulties() {
			stats := analyzeTier(category, difficulty, rounds)
			printStats(stats)
		}
	}
}

// analyzeTier runs n seeded generations for the tier and collects stats.
func analyzeTier(category, difficulty string, n int) TierStats {
	tier, _ := words.Lookup(category, difficulty)
	stats := TierStats{
		Category:   category,
		Difficulty: difficulty,
		Requested:  tier.WordCount,
		GridSize:   tier.GridSize,
		MinPlaced:  tier.WordCount,
	}

	for seed := int64(0); seed < int64(n); seed++ {
		rng := rand.New(rand.NewSource(seed))
		list, _, ok := words.Pick(rng, category, difficulty)
		if !ok {
			continue
		}

		puzzle := grid.NewGenerator(rng).Generate(list, tier.GridSize, grid.AllDirections)
		stats = recordRound(stats, puzzle.WordCount())
	}
	return stats
}

// recordRound folds one generation result into the running stats.
func recordRound(stats TierStats, placed int) TierStats {
	stats.Rounds++
	stats.TotalPlaced += placed
	if placed < stats.MinPlaced {
		stats.MinPlaced = placed
	}
	if placed > stats.MaxPlaced {
		stats.MaxPlaced = placed
	}
	if placed < playableMinimum {
		stats.Unplayable++
	}
	return stats
}

func printStats(s TierStats) {
	fmt.Printf("%-8s grid=%dx%d requested=%d avg=%.1f min=%d max=%d rate=%.0f%%\n",
		s.Difficulty, s.GridSize, s.GridSize, s.Requested,
		s.AveragePlaced(), s.MinPlaced, s.MaxPlaced, s.PlacementRate()*100)

	if s.Unplayable > 0 {
		fmt.Printf("   WARNING: %d/%d rounds placed fewer than %d words\n",
			s.Unplayable, s.Rounds, playableMinimum)
	}
}
