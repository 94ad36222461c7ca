package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/store"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentNotOpen  = errors.New("tournament no longer accepts registrations")
	ErrInvalidInput       = errors.New("invalid input")
)

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store}
}

type RegistrationInput struct {
	TeamName    string `json:"teamName"`
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
	Category    string `json:"category"`
	Modality    string `json:"modality"`
	Confirmed   bool   `json:"confirmed"`
}

func (s *TournamentService) CreateTournament(ctx context.Context, clubID uuid.UUID, name string, categories bracket.Categories) (*bracket.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c.Code == "" {
			return nil, fmt.Errorf("%w: category code is required", ErrInvalidInput)
		}
		if _, ok := seen[c.Code]; ok {
			return nil, fmt.Errorf("%w: duplicate category %s", ErrInvalidInput, c.Code)
		}
		seen[c.Code] = struct{}{}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament := &bracket.Tournament{
		ID:         uuid.New(),
		ClubID:     clubID,
		Name:       name,
		Status:     bracket.TournamentDraft,
		Categories: categories,
	}
	if err := s.store.CreateTournament(ctx, tx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Created tournament", "tournament_id", tournament.ID, "club_id", clubID, "categories", len(categories))
	return tournament, nil
}

// GetTournament only finds tournaments owned by clubID.
func (s *TournamentService) GetTournament(ctx context.Context, clubID, id uuid.UUID) (*bracket.Tournament, error) {
	tournament, err := s.store.GetTournamentForClub(ctx, id, clubID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	return tournament, err
}

func (s *TournamentService) ListTournaments(ctx context.Context, clubID uuid.UUID) ([]bracket.Tournament, error) {
	return s.store.GetTournamentsByClubID(ctx, clubID)
}

// RegisterTeams adds team registrations to a draft tournament.
func (s *TournamentService) RegisterTeams(ctx context.Context, tournament *bracket.Tournament, inputs []RegistrationInput) ([]bracket.Registration, error) {
	if tournament.Status != bracket.TournamentDraft {
		return nil, ErrTournamentNotOpen
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no registrations given", ErrInvalidInput)
	}

	modalities := make(map[string]string, len(tournament.Categories))
	for _, c := range tournament.Categories {
		modalities[c.Code] = c.Modality
	}

	registrations := make([]bracket.Registration, 0, len(inputs))
	for i, input := range inputs {
		teamName := strings.TrimSpace(input.TeamName)
		if teamName == "" || teamName == bracket.TBD {
			return nil, fmt.Errorf("%w: registration %d has no usable team name", ErrInvalidInput, i+1)
		}
		modality, ok := modalities[input.Category]
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
		}
		if input.Modality != "" {
			modality = input.Modality
		}

		registrations = append(registrations, bracket.Registration{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			TeamName:     teamName,
			Player1Name:  strings.TrimSpace(input.Player1Name),
			Player2Name:  strings.TrimSpace(input.Player2Name),
			Category:     input.Category,
			Modality:     modality,
			Confirmed:    input.Confirmed,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateRegistrations(ctx, tx, registrations); err != nil {
		return nil, fmt.Errorf("failed to create registrations: %w", err)
	}

	return registrations, tx.Commit()
}
