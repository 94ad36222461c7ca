package bracket

// NextSlot maps a match number to the match it feeds in the following round and the slot
// (1 or 2) its winner takes there: odd matches feed slot 1, even ones slot 2.
func NextSlot(matchNumber int) (nextMatchNumber int, slot int) {
	nextMatchNumber = (matchNumber + 1) / 2
	if matchNumber%2 != 0 {
		return nextMatchNumber, 1
	}
	return nextMatchNumber, 2
}

// IsFinal reports whether roundIndex is the last round of a bracket with numRounds.
func IsFinal(roundIndex, numRounds int) bool {
	return roundIndex == numRounds-1
}
