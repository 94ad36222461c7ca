package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/metrics"
	"github.com/padelyzer/bracket-engine/internal/store"
	"github.com/padelyzer/bracket-engine/internal/testutil"
)

var testClubID = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

type fixture struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	metrics     *metrics.Mock
	tournaments *TournamentService
	brackets    *BracketService
	matches     *MatchService
}

func setupServices(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	tournamentStore := store.NewTournamentStore(db)
	mock := metrics.NewMock()

	return &fixture{
		db:          db,
		store:       tournamentStore,
		metrics:     mock,
		tournaments: NewTournamentService(db, tournamentStore),
		brackets:    NewBracketService(db, tournamentStore, bracket.NewSeeder(rand.New(rand.NewSource(42))), mock),
		matches:     NewMatchService(db, tournamentStore, mock),
	}
}

type categorySetup struct {
	code  string
	teams int
}

// createTournament registers the given number of confirmed teams per category.
func (f *fixture) createTournament(t *testing.T, setups ...categorySetup) *bracket.Tournament {
	t.Helper()
	ctx := context.Background()

	var categories bracket.Categories
	for _, s := range setups {
		categories = append(categories, bracket.Category{Code: s.code, Name: s.code, Modality: "M"})
	}

	tournament, err := f.tournaments.CreateTournament(ctx, testClubID, "Open de Primavera", categories)
	require.NoError(t, err)

	var inputs []RegistrationInput
	for _, s := range setups {
		for i := 0; i < s.teams; i++ {
			inputs = append(inputs, RegistrationInput{
				TeamName:    teamName(s.code, i),
				Player1Name: fmt.Sprintf("%s Player %dA", s.code, i+1),
				Player2Name: fmt.Sprintf("%s Player %dB", s.code, i+1),
				Category:    s.code,
				Confirmed:   true,
			})
		}
	}
	if len(inputs) > 0 {
		_, err = f.tournaments.RegisterTeams(ctx, tournament, inputs)
		require.NoError(t, err)
	}

	return tournament
}

func (f *fixture) generate(t *testing.T, tournamentID uuid.UUID) *GenerationResult {
	t.Helper()
	result := f.brackets.GenerateBrackets(context.Background(), GenerateParams{TournamentID: tournamentID})
	require.True(t, result.Success, "generation failed: %s %v", result.Message, result.Errors)
	return result
}

func teamName(category string, i int) string {
	return fmt.Sprintf("%s Team %d", category, i+1)
}

// matchesOf returns the category's matches indexed by round then match number - 1.
func (f *fixture) matchesOf(t *testing.T, tournamentID uuid.UUID, category string) [][]bracket.Match {
	t.Helper()

	all, err := f.store.GetMatches(context.Background(), tournamentID)
	require.NoError(t, err)

	var rounds [][]bracket.Match
	for _, m := range all {
		if m.Category != category {
			continue
		}
		for len(rounds) <= m.RoundIndex {
			rounds = append(rounds, nil)
		}
		rounds[m.RoundIndex] = append(rounds[m.RoundIndex], m)
	}
	return rounds
}
