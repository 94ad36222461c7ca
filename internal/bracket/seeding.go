package bracket

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type SeedingMethod string

const (
	SeedRandom     SeedingMethod = "random"
	SeedRanked     SeedingMethod = "ranked"
	SeedSerpentine SeedingMethod = "serpentine"
)

// ParseSeedingMethod defaults to random when raw is empty.
func ParseSeedingMethod(raw string) (SeedingMethod, error) {
	switch SeedingMethod(raw) {
	case "":
		return SeedRandom, nil
	case SeedRandom, SeedRanked, SeedSerpentine:
		return SeedingMethod(raw), nil
	default:
		return "", fmt.Errorf("unknown seeding method %q", raw)
	}
}

// RandSource is satisfied by *rand.Rand.
type RandSource interface {
	Intn(n int) int
}

// Seeder is safe for concurrent use; calls share one random source under a lock.
type Seeder struct {
	mu  sync.Mutex
	rnd RandSource
}

// NewSeeder uses a time seeded source when rnd is nil.
func NewSeeder(rnd RandSource) *Seeder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Seeder{rnd: rnd}
}

// Seed orders teams for pairing. The input slice is never modified.
//
// TODO: ranked and serpentine need a ranking source (player levels) before they can
// differ from random; until then they shuffle like random.
func (s *Seeder) Seed(teams []Team, method SeedingMethod) []Team {
	switch method {
	case SeedRandom, SeedRanked, SeedSerpentine:
		s.mu.Lock()
		defer s.mu.Unlock()
		return Shuffle(s.rnd, teams)
	default:
		out := make([]Team, len(teams))
		copy(out, teams)
		return out
	}
}

// Shuffle returns a Fisher-Yates permutation of items.
func Shuffle[T any](rnd RandSource, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
