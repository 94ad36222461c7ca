package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/metrics"
	"github.com/padelyzer/bracket-engine/internal/store"
)

var (
	ErrBracketExists      = errors.New("bracket already generated")
	ErrDuplicateTeamName  = errors.New("duplicate team name")
	ErrUnsupportedBracket = errors.New("double elimination is not supported")
)

type BracketService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	seeder   *bracket.Seeder
	metrics  metrics.Metrics
	inflight singleflight.Group
}

func NewBracketService(db *sqlx.DB, store *store.TournamentStore, seeder *bracket.Seeder, m metrics.Metrics) *BracketService {
	if seeder == nil {
		seeder = bracket.NewSeeder(nil)
	}
	return &BracketService{db: db, store: store, seeder: seeder, metrics: m}
}

type GenerateParams struct {
	TournamentID  uuid.UUID
	Categories    []string
	SeedingMethod bracket.SeedingMethod
	BracketType   bracket.BracketType
}

type GenerationResult struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	Rounds              int      `json:"rounds"`
	MatchesCreated      int      `json:"matchesCreated"`
	CategoriesProcessed []string `json:"categoriesProcessed"`
	Errors              []string `json:"errors,omitempty"`
}

type CategoryEligibility struct {
	Category    string `json:"category"`
	Teams       int    `json:"teams"`
	CanGenerate bool   `json:"canGenerate"`
}

type EligibilityDetails struct {
	TotalTeams int                   `json:"totalTeams"`
	Categories []CategoryEligibility `json:"categories"`
}

type Eligibility struct {
	CanGenerate bool                `json:"canGenerate"`
	Message     string              `json:"message"`
	Details     *EligibilityDetails `json:"details,omitempty"`
}

// GenerateBrackets builds the single elimination bracket of every requested category.
// Failures are reported in the result, never returned. Rounds are always created pending
// with no completed matches; byes are counted once the first result is recorded.
func (s *BracketService) GenerateBrackets(ctx context.Context, params GenerateParams) *GenerationResult {
	// Callers joining an in-flight run must not lose it when the first caller goes away
	shared := context.WithoutCancel(ctx)
	v, _, joined := s.inflight.Do(inflightKey(params), func() (any, error) {
		return s.generate(shared, params), nil
	})
	if joined {
		log.Debug("Joined in-flight bracket generation", "tournament_id", params.TournamentID)
	}
	return v.(*GenerationResult)
}

func inflightKey(params GenerateParams) string {
	return strings.Join([]string{
		params.TournamentID.String(),
		strings.Join(params.Categories, ","),
		string(params.SeedingMethod),
		string(params.BracketType),
	}, "|")
}

func (s *BracketService) generate(ctx context.Context, params GenerateParams) *GenerationResult {
	start := time.Now()
	defer func() {
		s.metrics.ObserveGenerationDuration(time.Since(start).Seconds())
	}()

	result := &GenerationResult{CategoriesProcessed: []string{}}

	if params.BracketType == bracket.DoubleElimination {
		result.Message = ErrUnsupportedBracket.Error()
		result.Errors = []string{ErrUnsupportedBracket.Error()}
		return result
	}
	method := params.SeedingMethod
	if method == "" {
		method = bracket.SeedRandom
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return failed(err)
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, params.TournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		result.Message = "tournament not found"
		return result
	}
	if err != nil {
		return failed(fmt.Errorf("failed to load tournament: %w", err))
	}

	registrations, err := s.store.GetConfirmedRegistrationsTx(ctx, tx, tournament.ID)
	if err != nil {
		return failed(fmt.Errorf("failed to load registrations: %w", err))
	}

	categories := params.Categories
	if len(categories) == 0 {
		categories = tournament.Categories.Codes()
	}
	modalities := make(map[string]string, len(tournament.Categories))
	for _, c := range tournament.Categories {
		modalities[c.Code] = c.Modality
	}
	teamsByCategory := bracket.GroupByCategory(registrations)

	for _, code := range categories {
		teams := teamsByCategory[code]
		if len(teams) < 2 {
			result.Errors = append(result.Errors, fmt.Sprintf("category %s: needs at least 2 teams (has %d)", code, len(teams)))
			continue
		}

		created, err := s.generateCategoryInSavepoint(ctx, tx, tournament.ID, code, modalities[code], teams, method)
		if err != nil {
			log.Warn("Skipped category bracket", "tournament_id", tournament.ID, "category", code, "err", err)
			result.Errors = append(result.Errors, fmt.Sprintf("category %s: %v", code, err))
			continue
		}

		result.MatchesCreated += created.matches
		result.Rounds = max(result.Rounds, created.rounds)
		result.CategoriesProcessed = append(result.CategoriesProcessed, code)
	}

	if len(result.CategoriesProcessed) > 0 {
		if err := s.store.UpdateTournamentStatusTx(ctx, tx, tournament.ID, bracket.TournamentActive); err != nil {
			return failed(fmt.Errorf("failed to activate tournament: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return failed(fmt.Errorf("failed to commit brackets: %w", err))
	}

	result.Success = len(result.CategoriesProcessed) > 0
	if result.Success {
		result.Message = fmt.Sprintf("brackets generated for %d category(ies)", len(result.CategoriesProcessed))
	} else {
		result.Message = "no brackets could be generated"
	}

	s.metrics.IncBracketsGenerated(len(result.CategoriesProcessed))
	s.metrics.AddMatchesCreated(result.MatchesCreated)
	s.metrics.IncCategoryErrors(len(result.Errors))

	log.Info("Generated brackets",
		"tournament_id", tournament.ID,
		"categories", result.CategoriesProcessed,
		"matches", result.MatchesCreated,
		"errors", len(result.Errors))

	return result
}

// failed discards anything counted so far, the transaction will not commit.
func failed(err error) *GenerationResult {
	log.Error("Bracket generation failed", "err", err)
	return &GenerationResult{
		Message:             "failed to generate brackets",
		CategoriesProcessed: []string{},
		Errors:              []string{err.Error()},
	}
}

type categoryBracket struct {
	rounds  int
	matches int
}

func (s *BracketService) generateCategoryInSavepoint(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, category, modality string, teams []bracket.Team, method bracket.SeedingMethod) (categoryBracket, error) {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT category_bracket"); err != nil {
		return categoryBracket{}, err
	}

	created, err := s.generateCategory(ctx, tx, tournamentID, category, modality, teams, method)
	if err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT category_bracket"); rbErr != nil {
			return categoryBracket{}, errors.Join(err, rbErr)
		}
	}
	if _, relErr := tx.ExecContext(ctx, "RELEASE SAVEPOINT category_bracket"); relErr != nil {
		return categoryBracket{}, errors.Join(err, relErr)
	}
	return created, err
}

func (s *BracketService) generateCategory(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, category, modality string, teams []bracket.Team, method bracket.SeedingMethod) (categoryBracket, error) {
	if name, ok := duplicateTeamName(teams); ok {
		return categoryBracket{}, fmt.Errorf("%w: %s", ErrDuplicateTeamName, name)
	}

	existing, err := s.store.FindRoundTx(ctx, tx, tournamentID, category, 0)
	if err != nil {
		return categoryBracket{}, fmt.Errorf("failed to look up first round: %w", err)
	}
	if existing != nil {
		return categoryBracket{}, ErrBracketExists
	}

	seeded := s.seeder.Seed(teams, method)
	layout, err := bracket.Size(len(seeded))
	if err != nil {
		return categoryBracket{}, err
	}
	names := bracket.RoundNames(layout.NumRounds)
	pairs := bracket.BuildFirstRoundPairs(seeded, layout.BracketSize, layout.Byes)

	if modality == "" {
		modality = teams[0].Modality
	}

	rounds := make([]bracket.Round, layout.NumRounds)
	matchesByRound := make([][]bracket.Match, layout.NumRounds)
	for i := range rounds {
		rounds[i] = bracket.Round{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Category:     category,
			Modality:     modality,
			RoundIndex:   i,
			Name:         names[i],
			Stage:        names[i],
			MatchesCount: bracket.MatchesInRound(layout.NumRounds, i),
			Status:       bracket.RoundPending,
		}
		matchesByRound[i] = make([]bracket.Match, rounds[i].MatchesCount)
		for n := range matchesByRound[i] {
			matchesByRound[i][n] = bracket.Match{
				ID:           uuid.New(),
				TournamentID: tournamentID,
				RoundID:      rounds[i].ID,
				Category:     category,
				RoundIndex:   i,
				RoundLabel:   names[i],
				MatchNumber:  n + 1,
				Team1Name:    bracket.TBD,
				Team2Name:    bracket.TBD,
				Status:       bracket.MatchScheduled,
			}
		}
	}

	for i, pair := range pairs {
		m := &matchesByRound[0][i]
		if pair.Team1 != nil {
			m.SetTeam(1, *pair.Team1)
		}
		if pair.Team2 != nil {
			m.SetTeam(2, *pair.Team2)
		}
		if !pair.IsBye {
			continue
		}

		m.IsBye = true
		m.Status = bracket.MatchCompleted
		m.Winner = &pair.Team1.TeamName

		// Byes advance straight away so the next round shows who is waiting
		if layout.NumRounds > 1 {
			next, slot := bracket.NextSlot(m.MatchNumber)
			matchesByRound[1][next-1].SetTeam(slot, *pair.Team1)
		}
	}

	var matches []bracket.Match
	for i := range rounds {
		if err := s.store.CreateRound(ctx, tx, &rounds[i]); err != nil {
			return categoryBracket{}, fmt.Errorf("failed to create round %q: %w", rounds[i].Name, err)
		}
		matches = append(matches, matchesByRound[i]...)
	}
	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return categoryBracket{}, fmt.Errorf("failed to create matches: %w", err)
	}

	log.Debug("Created category bracket",
		"tournament_id", tournamentID,
		"category", category,
		"teams", len(teams),
		"bracket_size", layout.BracketSize,
		"byes", layout.Byes)

	return categoryBracket{rounds: layout.NumRounds, matches: len(matches)}, nil
}

// Team names identify winners and slots, so they must be unique within a category.
func duplicateTeamName(teams []bracket.Team) (string, bool) {
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if _, ok := seen[t.TeamName]; ok {
			return t.TeamName, true
		}
		seen[t.TeamName] = struct{}{}
	}
	return "", false
}

// CanGenerateBrackets is the pre-check run before generation.
func (s *BracketService) CanGenerateBrackets(ctx context.Context, tournamentID uuid.UUID) *Eligibility {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return &Eligibility{Message: "tournament not found"}
	}
	if err != nil {
		log.Error("Failed to load tournament", "tournament_id", tournamentID, "err", err)
		return &Eligibility{Message: "failed to check tournament state"}
	}

	existing, err := s.store.CountMatches(ctx, tournament.ID)
	if err != nil {
		log.Error("Failed to count matches", "tournament_id", tournamentID, "err", err)
		return &Eligibility{Message: "failed to check tournament state"}
	}
	if existing > 0 {
		return &Eligibility{Message: "brackets have already been generated for this tournament"}
	}

	registrations, err := s.store.GetConfirmedRegistrations(ctx, tournament.ID)
	if err != nil {
		log.Error("Failed to load registrations", "tournament_id", tournamentID, "err", err)
		return &Eligibility{Message: "failed to check tournament state"}
	}
	if len(registrations) < 2 {
		return &Eligibility{Message: "at least 2 registered teams are needed to generate brackets"}
	}

	teamsByCategory := bracket.GroupByCategory(registrations)
	details := &EligibilityDetails{TotalTeams: len(registrations)}
	for code, teams := range teamsByCategory {
		details.Categories = append(details.Categories, CategoryEligibility{
			Category:    code,
			Teams:       len(teams),
			CanGenerate: len(teams) >= 2,
		})
	}
	sort.Slice(details.Categories, func(i, j int) bool {
		return details.Categories[i].Category < details.Categories[j].Category
	})

	return &Eligibility{
		CanGenerate: true,
		Message:     "ready to generate brackets",
		Details:     details,
	}
}
