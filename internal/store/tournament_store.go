package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/padelyzer/bracket-engine/internal/bracket"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

const (
	insertTournamentQuery = `INSERT INTO tournaments (id, club_id, name, status, categories, created_at, updated_at)
		VALUES (:id, :club_id, :name, :status, :categories, :created_at, :updated_at)`
	insertRegistrationQuery = `INSERT INTO registrations (id, tournament_id, team_name, player1_name, player2_name, category, modality, confirmed, checked_in, created_at)
		VALUES (:id, :tournament_id, :team_name, :player1_name, :player2_name, :category, :modality, :confirmed, :checked_in, :created_at)`
	insertRoundQuery = `INSERT INTO rounds (id, tournament_id, category, modality, round_index, name, stage, matches_count, completed_matches, status, created_at, updated_at)
		VALUES (:id, :tournament_id, :category, :modality, :round_index, :name, :stage, :matches_count, :completed_matches, :status, :created_at, :updated_at)`
	insertMatchQuery = `INSERT INTO matches (id, tournament_id, round_id, category, round_index, round_label, match_number,
			team1_name, team1_player1, team1_player2, team2_name, team2_player1, team2_player2,
			status, winner, score, is_bye, court_number, scheduled_at, created_at, updated_at)
		VALUES (:id, :tournament_id, :round_id, :category, :round_index, :round_label, :match_number,
			:team1_name, :team1_player1, :team1_player2, :team2_name, :team2_player1, :team2_player2,
			:status, :winner, :score, :is_bye, :court_number, :scheduled_at, :created_at, :updated_at)`
	updateMatchQuery = `UPDATE matches SET
			team1_name = :team1_name, team1_player1 = :team1_player1, team1_player2 = :team1_player2,
			team2_name = :team2_name, team2_player1 = :team2_player1, team2_player2 = :team2_player2,
			status = :status, winner = :winner, score = :score, updated_at = :updated_at
		WHERE id = :id`
)

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	stamp(&tournament.CreatedAt, &tournament.UpdatedAt)
	_, err := tx.NamedExecContext(ctx, insertTournamentQuery, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return getTournament(ctx, s.db, id)
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*bracket.Tournament, error) {
	return getTournament(ctx, tx, id)
}

func getTournament(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	if err := sqlx.GetContext(ctx, q, &tournament, "SELECT * FROM tournaments WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &tournament, nil
}

// GetTournamentForClub only finds tournaments owned by clubID.
func (s *TournamentStore) GetTournamentForClub(ctx context.Context, id, clubID uuid.UUID) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ? AND club_id = ?", id, clubID)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) GetTournamentsByClubID(ctx context.Context, clubID uuid.UUID) ([]bracket.Tournament, error) {
	var tournaments []bracket.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments WHERE club_id = ? ORDER BY created_at DESC", clubID)
	return tournaments, err
}

func (s *TournamentStore) UpdateTournamentStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status bracket.TournamentStatus) error {
	res, err := tx.ExecContext(ctx, "UPDATE tournaments SET status = ?, updated_at = ? WHERE id = ?", status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TournamentStore) CreateRegistrations(ctx context.Context, tx *sqlx.Tx, registrations []bracket.Registration) error {
	if len(registrations) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range registrations {
		if registrations[i].CreatedAt.IsZero() {
			registrations[i].CreatedAt = now
		}
	}
	_, err := tx.NamedExecContext(ctx, insertRegistrationQuery, registrations)
	return err
}

func (s *TournamentStore) GetConfirmedRegistrations(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Registration, error) {
	return getConfirmedRegistrations(ctx, s.db, tournamentID)
}

func (s *TournamentStore) GetConfirmedRegistrationsTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) ([]bracket.Registration, error) {
	return getConfirmedRegistrations(ctx, tx, tournamentID)
}

func getConfirmedRegistrations(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) ([]bracket.Registration, error) {
	var registrations []bracket.Registration
	err := sqlx.SelectContext(ctx, q, &registrations,
		"SELECT * FROM registrations WHERE tournament_id = ? AND confirmed = 1 ORDER BY created_at ASC, rowid ASC", tournamentID)
	return registrations, err
}

// FindRoundTx returns nil without an error when the round does not exist.
func (s *TournamentStore) FindRoundTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, category string, roundIndex int) (*bracket.Round, error) {
	var round bracket.Round
	err := tx.GetContext(ctx, &round,
		"SELECT * FROM rounds WHERE tournament_id = ? AND category = ? AND round_index = ?", tournamentID, category, roundIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *TournamentStore) CreateRound(ctx context.Context, tx *sqlx.Tx, round *bracket.Round) error {
	stamp(&round.CreatedAt, &round.UpdatedAt)
	_, err := tx.NamedExecContext(ctx, insertRoundQuery, round)
	return err
}

func (s *TournamentStore) GetRounds(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Round, error) {
	var rounds []bracket.Round
	err := s.db.SelectContext(ctx, &rounds,
		"SELECT * FROM rounds WHERE tournament_id = ? ORDER BY category ASC, round_index ASC", tournamentID)
	return rounds, err
}

func (s *TournamentStore) CountRoundsTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, category string) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM rounds WHERE tournament_id = ? AND category = ?", tournamentID, category)
	return count, err
}

// RefreshRoundProgressTx recounts the completed matches of a round and derives its status.
func (s *TournamentStore) RefreshRoundProgressTx(ctx context.Context, tx *sqlx.Tx, roundID uuid.UUID) (*bracket.Round, error) {
	var round bracket.Round
	if err := tx.GetContext(ctx, &round, "SELECT * FROM rounds WHERE id = ?", roundID); err != nil {
		return nil, err
	}

	var completed int
	err := tx.GetContext(ctx, &completed, "SELECT COUNT(*) FROM matches WHERE round_id = ? AND status = ?", roundID, bracket.MatchCompleted)
	if err != nil {
		return nil, err
	}

	round.CompletedMatches = completed
	round.Status = bracket.Progress(completed, round.MatchesCount)
	round.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, "UPDATE rounds SET completed_matches = ?, status = ?, updated_at = ? WHERE id = ?",
		round.CompletedMatches, round.Status, round.UpdatedAt, round.ID)
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []bracket.Match) error {
	if len(matches) == 0 {
		return nil
	}
	for i := range matches {
		stamp(&matches[i].CreatedAt, &matches[i].UpdatedAt)
	}
	_, err := tx.NamedExecContext(ctx, insertMatchQuery, matches)
	return err
}

func (s *TournamentStore) GetMatch(ctx context.Context, id uuid.UUID) (*bracket.Match, error) {
	return getMatch(ctx, s.db, id)
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*bracket.Match, error) {
	return getMatch(ctx, tx, id)
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*bracket.Match, error) {
	var match bracket.Match
	if err := sqlx.GetContext(ctx, q, &match, "SELECT * FROM matches WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetMatchAtTx finds a match by its bracket position.
func (s *TournamentStore) GetMatchAtTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, category string, roundIndex, matchNumber int) (*bracket.Match, error) {
	var match bracket.Match
	err := tx.GetContext(ctx, &match,
		"SELECT * FROM matches WHERE tournament_id = ? AND category = ? AND round_index = ? AND match_number = ?",
		tournamentID, category, roundIndex, matchNumber)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := s.db.SelectContext(ctx, &matches,
		"SELECT * FROM matches WHERE tournament_id = ? ORDER BY category ASC, round_index ASC, match_number ASC", tournamentID)
	return matches, err
}

func (s *TournamentStore) UpdateMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error {
	match.UpdatedAt = time.Now().UTC()
	res, err := tx.NamedExecContext(ctx, updateMatchQuery, match)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TournamentStore) CountMatches(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches WHERE tournament_id = ?", tournamentID)
	return count, err
}

func (s *TournamentStore) CountOpenMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches WHERE tournament_id = ? AND status <> ?", tournamentID, bracket.MatchCompleted)
	return count, err
}

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
