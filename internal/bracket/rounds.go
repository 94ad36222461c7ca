package bracket

import "fmt"

// MatchesInRound is the match count of round i (0 = first round) in a bracket of numRounds.
func MatchesInRound(numRounds, i int) int {
	return 1 << (numRounds - i - 1)
}

// RoundNames labels each round from the first one to the final.
func RoundNames(numRounds int) []string {
	names := make([]string, 0, numRounds)
	for i := 0; i < numRounds; i++ {
		switch MatchesInRound(numRounds, i) {
		case 1:
			names = append(names, "Final")
		case 2:
			names = append(names, "Semifinal")
		case 4:
			names = append(names, "Cuartos de Final")
		case 8:
			names = append(names, "Octavos de Final")
		default:
			names = append(names, fmt.Sprintf("Ronda %d", i+1))
		}
	}
	return names
}
