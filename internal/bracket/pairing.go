package bracket

// Pair is one first round slot. Team2 is nil for a bye.
type Pair struct {
	Team1 *Team
	Team2 *Team
	IsBye bool
}

// BuildFirstRoundPairs hands the byes to the first seeds, then pairs the rest in seed order.
func BuildFirstRoundPairs(seeded []Team, bracketSize, byes int) []Pair {
	numMatches := bracketSize / 2
	pairs := make([]Pair, 0, numMatches)

	next := 0
	take := func() *Team {
		if next >= len(seeded) {
			return nil
		}
		t := seeded[next]
		next++
		return &t
	}

	for i := 0; i < numMatches; i++ {
		if i < byes {
			pairs = append(pairs, Pair{Team1: take(), IsBye: true})
			continue
		}
		pairs = append(pairs, Pair{Team1: take(), Team2: take()})
	}

	return pairs
}
