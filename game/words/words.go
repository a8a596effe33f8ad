// Package words holds the compiled-in word catalogs and difficulty tiers
// used to build puzzles. A category names a themed word list; a difficulty
// tier fixes how many words are requested and how large the grid is.
package words

import (
	"math/rand"
	"sort"
)

// Tier describes one difficulty level.
type Tier struct {
	WordCount int `json:"word_count"`
	GridSize  int `json:"grid_size"`
}

// categories maps category name to its themed word list. Lists are stored
// uppercase; the generator normalizes them again before placement.
var categories = map[string][]string{
	"general": {
		"NODE", "REACT", "SOCKET", "EXPRESS", "HTML", "CSS", "GRID", "SERVER",
		"CLIENT", "DATABASE", "ASYNC", "AWAIT", "FETCH", "LOGIN", "STYLE",
		"VARIABLE", "FUNCTION", "OBJECT", "CLASS", "MODULE",
	},
	"tech": {
		"JAVASCRIPT", "TYPESCRIPT", "PYTHON", "RUST", "GOLANG", "DOCKER",
		"KUBERNETES", "TERRAFORM", "WEBPACK", "BABEL", "ANGULAR", "VUEJS",
		"SVELTE", "MYSQL", "POSTGRES", "FIREBASE", "ALGORITHM", "DEBUGGING",
		"NETWORK", "SECURITY",
	},
	"animals": {
		"LION", "TIGER", "ELEPHANT", "GIRAFFE", "ZEBRA", "MONKEY", "KANGAROO",
		"PENGUIN", "DOLPHIN", "WHALE", "BEAR", "WOLF", "EAGLE", "SNAKE",
		"CROCODILE", "HIPPO", "RHINO", "CHEETAH", "LEOPARD", "PANDA",
	},
	"food": {
		"PIZZA", "BURGER", "PASTA", "SUSHI", "SALAD", "STEAK", "CHICKEN",
		"SOUP", "BREAD", "CHEESE", "APPLE", "BANANA", "ORANGE", "GRAPES",
		"WATERMELON", "CHOCOLATE", "CAKE", "COOKIE", "ICECREAM", "FRIES",
	},
	"countries": {
		"CANADA", "BRAZIL", "FRANCE", "GERMANY", "INDIA", "JAPAN", "MEXICO",
		"RUSSIA", "SPAIN", "EGYPT", "KENYA", "AUSTRALIA", "ARGENTINA",
		"CHINA", "ITALY", "NIGERIA", "SWEDEN", "THAILAND", "TURKEY", "VIETNAM",
	},
}

// tiers maps difficulty name to word count and grid size.
var tiers = map[string]Tier{
	"easy":   {WordCount: 10, GridSize: 12},
	"medium": {WordCount: 15, GridSize: 15},
	"hard":   {WordCount: 20, GridSize: 18},
}

// Categories returns the known category names, sorted.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Difficulties returns the known difficulty names, sorted.
func Difficulties() []string {
	names := make([]string, 0, len(tiers))
	for name := range tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a difficulty tier, reporting whether both the category
// and the difficulty are recognized.
func Lookup(category, difficulty string) (Tier, bool) {
	if _, ok := categories[category]; !ok {
		return Tier{}, false
	}
	tier, ok := tiers[difficulty]
	return tier, ok
}

// Pick selects the tier's word count at random from the category list. It
// returns false when the settings are unrecognized.
func Pick(rng *rand.Rand, category, difficulty string) ([]string, Tier, bool) {
	tier, ok := Lookup(category, difficulty)
	if !ok {
		return nil, Tier{}, false
	}

	list := categories[category]
	shuffled := make([]string, len(list))
	copy(shuffled, list)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := tier.WordCount
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], tier, true
}
