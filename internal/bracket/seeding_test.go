package bracket

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []Team {
	teams := make([]Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, Team{TeamName: fmt.Sprintf("Team %d", i), Category: "M_OPEN", Modality: "M"})
	}
	return teams
}

func TestShuffle_IsPermutation(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for _, n := range []int{0, 1, 2, 3, 7, 16, 33} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			shuffled := Shuffle(rnd, items)
			assert.Len(t, shuffled, n)
			assert.ElementsMatch(t, items, shuffled)
		})
	}
}

func TestShuffle_DoesNotModifyInput(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	Shuffle(rand.New(rand.NewSource(1)), items)
	assert.Equal(t, []string{"a", "b", "c", "d"}, items)
}

func TestSeeder_ReproducibleWithSeededSource(t *testing.T) {
	teams := makeTeams(10)

	first := NewSeeder(rand.New(rand.NewSource(7))).Seed(teams, SeedRandom)
	second := NewSeeder(rand.New(rand.NewSource(7))).Seed(teams, SeedRandom)

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, teams, first)
}

func TestSeeder_AllMethodsKeepEveryTeam(t *testing.T) {
	teams := makeTeams(9)
	seeder := NewSeeder(rand.New(rand.NewSource(3)))

	for _, method := range []SeedingMethod{SeedRandom, SeedRanked, SeedSerpentine, SeedingMethod("other")} {
		seeded := seeder.Seed(teams, method)
		assert.ElementsMatch(t, teams, seeded, "method %s dropped or duplicated teams", method)
	}
}

func TestSeeder_UnknownMethodKeepsOrder(t *testing.T) {
	teams := makeTeams(5)
	seeded := NewSeeder(nil).Seed(teams, SeedingMethod("alphabetical"))
	assert.Equal(t, teams, seeded)
}

func TestParseSeedingMethod(t *testing.T) {
	method, err := ParseSeedingMethod("")
	require.NoError(t, err)
	assert.Equal(t, SeedRandom, method)

	method, err = ParseSeedingMethod("serpentine")
	require.NoError(t, err)
	assert.Equal(t, SeedSerpentine, method)

	_, err = ParseSeedingMethod("elo")
	assert.Error(t, err)
}

func TestSeeder_ConcurrentSeedsShareOneSource(t *testing.T) {
	seeder := NewSeeder(nil)
	teams := makeTeams(8)

	var wg sync.WaitGroup
	results := make([][]Team, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = seeder.Seed(teams, SeedRandom)
		}(i)
	}
	wg.Wait()

	for _, seeded := range results {
		assert.ElementsMatch(t, teams, seeded)
	}
}
