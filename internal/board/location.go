package board

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// ErrTooManyDailyDoubles is returned when more daily doubles are requested
// than the board has squares.
var ErrTooManyDailyDoubles = errors.New("board: more daily doubles than squares")

// Observed frequencies by row on the televised show: 10, 433, 998, 1433, 945.
var dailyDoubleWeights = [CategoryHeight]float64{0.002, 0.113, 0.261, 0.375, 0.247}

// Location addresses one square. Category 0 is leftmost, row 0 is the top
// (cheapest) clue of its category.
type Location struct {
	Category int `json:"category"`
	Row      int `json:"row"`
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Category, l.Row)
}

// RandomLocations draws n distinct squares from a board categories wide,
// biased toward the deeper rows of each category. The caller supplies the
// generator, so a seeded generator reproduces the same draw.
//
// Weighted sampling without replacement per Efraimidis and Spirakis: each
// candidate square gets the key u^(1/w) for u uniform in (0,1) and w its row
// weight; the n largest keys win.
func RandomLocations(rng *rand.Rand, n, categories int) ([]Location, error) {
	total := categories * CategoryHeight
	if n > total {
		return nil, fmt.Errorf("%w: want %d of %d", ErrTooManyDailyDoubles, n, total)
	}

	type candidate struct {
		index int
		key   float64
	}

	// Flat indexes count down rows first, then across categories:
	//   0 3 6  9
	//   1 4 7 10
	//   2 5 8 11
	candidates := make([]candidate, total)
	for i := range candidates {
		u := rng.Float64()
		w := dailyDoubleWeights[i%CategoryHeight]
		candidates[i] = candidate{index: i, key: math.Pow(u, 1/w)}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].key > candidates[j].key
	})

	locations := make([]Location, n)
	for i, c := range candidates[:n] {
		locations[i] = Location{
			Category: c.index / CategoryHeight,
			Row:      c.index % CategoryHeight,
		}
	}
	return locations, nil
}
