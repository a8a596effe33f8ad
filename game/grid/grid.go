package grid

import (
	"math/rand"
	"strings"
	"time"
)

// Direction is a unit vector along which a word can be written.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// AllDirections lists the eight permitted placement directions: horizontal,
// vertical, and both diagonals, each forward and reversed.
var AllDirections = []Direction{
	{DX: 1, DY: 0},   // horizontal
	{DX: 0, DY: 1},   // vertical
	{DX: 1, DY: 1},   // diagonal down-right
	{DX: -1, DY: 0},  // horizontal reversed
	{DX: 0, DY: -1},  // vertical reversed
	{DX: -1, DY: -1}, // diagonal up-left
	{DX: 1, DY: -1},  // diagonal up-right
	{DX: -1, DY: 1},  // diagonal down-left
}

// letterFrequencies weights filler letters toward common English letters,
// which reduces accidental words appearing in the filled grid.
const letterFrequencies = "EEEEEEEEEETAAAAOIIINNNSSSHRRRLLLDDCCUUMMFFGGYYWPPBBVVKJXQZ"

// DefaultMaxAttempts is the per-word placement attempt budget.
const DefaultMaxAttempts = 200

// Puzzle is a generated word-search board. It is immutable once returned.
type Puzzle struct {
	Size int `json:"size"`

	// Cells holds single uppercase letters, indexed [y][x].
	Cells [][]string `json:"grid"`

	// PlacedWords is the authoritative word list: the subset of requested
	// words that were actually placed, in placement order. Callers must use
	// this, not the requested list.
	PlacedWords []string `json:"words"`

	placed map[string]struct{}
}

// Contains reports whether the normalized word was placed in the puzzle.
func (p *Puzzle) Contains(word string) bool {
	_, ok := p.placed[word]
	return ok
}

// WordCount returns the number of placed words.
func (p *Puzzle) WordCount() int {
	return len(p.PlacedWords)
}

// Generator places words onto square grids using bounded randomized retry.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewGenerator creates a generator. A nil rng gets a time-seeded source;
// tests pass a seeded one for reproducible puzzles.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, maxAttempts: DefaultMaxAttempts}
}

// SetMaxAttempts overrides the per-word attempt budget. Values below 100
// are ignored so exhaustion stays a rare outcome.
func (g *Generator) SetMaxAttempts(n int) {
	if n >= 100 {
		g.maxAttempts = n
	}
}

// Normalize uppercases a word and strips everything but A-Z.
func Normalize(word string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate attempts to place each word, in order, onto a size×size grid
// along the permitted directions, then fills every remaining cell with a
// frequency-weighted letter.
//
// Failing to place a word is a normal outcome: it is simply absent from
// PlacedWords. A puzzle with zero placements is valid output; callers
// decide whether that is acceptable.
func (g *Generator) Generate(words []string, size int, directions []Direction) *Puzzle {
	cells := make([][]string, size)
	for y := range cells {
		cells[y] = make([]string, size)
	}

	puzzle := &Puzzle{
		Size:   size,
		Cells:  cells,
		placed: make(map[string]struct{}),
	}

	for _, raw := range words {
		word := Normalize(raw)
		if word == "" || len(word) > size {
			continue
		}
		if puzzle.Contains(word) {
			continue
		}

		if g.placeWord(puzzle, word, directions) {
			puzzle.PlacedWords = append(puzzle.PlacedWords, word)
			puzzle.placed[word] = struct{}{}
		}
	}

	// Fill the remaining cells.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if cells[y][x] == "" {
				cells[y][x] = string(letterFrequencies[g.rng.Intn(len(letterFrequencies))])
			}
		}
	}

	return puzzle
}

// placeWord tries up to the attempt budget to find a legal start cell and
// direction for the word, writing it into the grid on success.
func (g *Generator) placeWord(p *Puzzle, word string, directions []Direction) bool {
	if len(directions) == 0 {
		return false
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		dir := directions[g.rng.Intn(len(directions))]

		// Bound the start cell so the full word stays in the grid along dir.
		// The choice is uniform over all valid start cells for this
		// direction and length.
		minX, maxX := startRange(dir.DX, len(word), p.Size)
		minY, maxY := startRange(dir.DY, len(word), p.Size)
		if maxX < minX || maxY < minY {
			continue // word too long for the grid along this direction
		}

		startX := minX + g.rng.Intn(maxX-minX+1)
		startY := minY + g.rng.Intn(maxY-minY+1)

		if !canPlace(p, word, startX, startY, dir) {
			continue
		}

		for i := 0; i < len(word); i++ {
			p.Cells[startY+dir.DY*i][startX+dir.DX*i] = string(word[i])
		}
		return true
	}

	return false
}

// startRange returns the inclusive bounds for a start coordinate along one
// axis, given the direction component on that axis.
func startRange(d, length, size int) (min, max int) {
	switch {
	case d > 0:
		return 0, size - length
	case d < 0:
		return length - 1, size - 1
	default:
		return 0, size - 1
	}
}

// canPlace reports whether every cell on the word's path is empty or
// already holds the letter the word needs there. Matching letters are what
// allow words to cross.
func canPlace(p *Puzzle, word string, startX, startY int, dir Direction) bool {
	for i := 0; i < len(word); i++ {
		x := startX + dir.DX*i
		y := startY + dir.DY*i
		if x < 0 || x >= p.Size || y < 0 || y >= p.Size {
			return false
		}
		cell := p.Cells[y][x]
		if cell != "" && cell != string(word[i]) {
			return false
		}
	}
	return true
}
