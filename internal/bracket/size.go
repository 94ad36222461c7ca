package bracket

import (
	"errors"
	"math"
)

var ErrNotEnoughTeams = errors.New("at least two teams are required")

type Layout struct {
	BracketSize       int `json:"bracketSize"`
	NumRounds         int `json:"numRounds"`
	FirstRoundMatches int `json:"firstRoundMatches"`
	Byes              int `json:"byes"`
}

// Gets the nearest power of 2 while rounding up, so with input 5 it returns 8 and so on
func calcBracketSize(count int) int {
	if count <= 0 {
		return 0
	}

	// Log2 -> Ceil -> 2^^log2 to round up
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// Size computes the single elimination layout for teamCount entrants.
func Size(teamCount int) (Layout, error) {
	if teamCount < 2 {
		return Layout{}, ErrNotEnoughTeams
	}

	bracketSize := calcBracketSize(teamCount)
	return Layout{
		BracketSize:       bracketSize,
		NumRounds:         int(math.Log2(float64(bracketSize))),
		FirstRoundMatches: bracketSize / 2,
		Byes:              bracketSize - teamCount,
	}, nil
}
