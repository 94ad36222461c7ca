package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/metrics"
	"github.com/padelyzer/bracket-engine/internal/store"
	"github.com/padelyzer/bracket-engine/internal/utils"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchAlreadyCompleted = errors.New("match already completed")
	ErrTeamsNotDecided       = errors.New("both teams must be known before recording a result")
	ErrWinnerNotInMatch      = errors.New("winner is not part of this match")
)

type MatchService struct {
	db      *sqlx.DB
	store   *store.TournamentStore
	metrics metrics.Metrics
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore, m metrics.Metrics) *MatchService {
	return &MatchService{db: db, store: store, metrics: m}
}

// ResultOutcome describes everything a recorded result changed.
type ResultOutcome struct {
	Match               *bracket.Match `json:"match"`
	Round               *bracket.Round `json:"round"`
	NextMatch           *bracket.Match `json:"nextMatch,omitempty"`
	ReadyToSchedule     bool           `json:"readyToSchedule"`
	Champion            string         `json:"champion,omitempty"`
	TournamentCompleted bool           `json:"tournamentCompleted"`
}

func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*bracket.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return match, err
}

// RecordMatchResult completes a scheduled match and feeds the winner into the next round.
// The final of a category crowns its champion instead, and the tournament completes once
// no open match remains.
func (s *MatchService) RecordMatchResult(ctx context.Context, matchID uuid.UUID, winnerName, score string) (*ResultOutcome, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if match.Status == bracket.MatchCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	if !match.TeamsDecided() {
		return nil, ErrTeamsNotDecided
	}
	winnerSlot := match.SlotOf(winnerName)
	if winnerSlot == 0 {
		return nil, ErrWinnerNotInMatch
	}

	match.Status = bracket.MatchCompleted
	match.Winner = &winnerName
	match.Score = utils.StringOrNil(score)
	if err := s.store.UpdateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	outcome := &ResultOutcome{Match: match}

	outcome.Round, err = s.store.RefreshRoundProgressTx(ctx, tx, match.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to update round progress: %w", err)
	}

	numRounds, err := s.store.CountRoundsTx(ctx, tx, match.TournamentID, match.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to count rounds: %w", err)
	}

	if bracket.IsFinal(match.RoundIndex, numRounds) {
		outcome.Champion = winnerName
	} else {
		nextNumber, slot := bracket.NextSlot(match.MatchNumber)
		next, err := s.store.GetMatchAtTx(ctx, tx, match.TournamentID, match.Category, match.RoundIndex+1, nextNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to get next match: %w", err)
		}

		next.SetTeam(slot, match.TeamInSlot(winnerSlot))
		if err := s.store.UpdateMatch(ctx, tx, next); err != nil {
			return nil, fmt.Errorf("failed to update next match: %w", err)
		}
		outcome.NextMatch = next
		outcome.ReadyToSchedule = next.TeamsDecided()
	}

	open, err := s.store.CountOpenMatchesTx(ctx, tx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open matches: %w", err)
	}
	if open == 0 {
		if err := s.store.UpdateTournamentStatusTx(ctx, tx, match.TournamentID, bracket.TournamentCompleted); err != nil {
			return nil, fmt.Errorf("failed to update tournament status: %w", err)
		}
		outcome.TournamentCompleted = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.metrics.IncResultsRecorded()
	if outcome.TournamentCompleted {
		s.metrics.IncTournamentsCompleted()
	}

	log.Info("Recorded match result",
		"match_id", match.ID,
		"category", match.Category,
		"round", match.RoundLabel,
		"winner", winnerName,
		"score", utils.OrZero(match.Score),
		"ready_to_schedule", outcome.ReadyToSchedule,
		"champion", outcome.Champion)

	return outcome, nil
}
