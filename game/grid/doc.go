// Package grid generates word-search puzzles.
//
// The grid package implements puzzle generation:
//   - Word placement along the eight straight-line directions
//   - Bounded randomized retry per word, tolerating placement failure
//   - Overlap-aware placement (words may cross on shared letters)
//   - Frequency-weighted filler letters for every remaining cell
//
// Core Types:
//
// Generator places words onto square grids. Puzzle is the immutable result:
// the filled grid plus the authoritative set of words that were actually
// placed, which may be smaller than the requested list.
//
// Usage:
//
//	gen := grid.NewGenerator(nil)
//	puzzle := gen.Generate([]string{"LION", "TIGER"}, 12, grid.AllDirections)
//
//	for _, word := range puzzle.PlacedWords {
//		// only these words are findable in puzzle.Cells
//	}
//
// Randomness:
//
// Generation is intentionally randomized and makes no determinism guarantee
// across calls. Pass a seeded *rand.Rand to NewGenerator for reproducible
// output in tests.
package grid
