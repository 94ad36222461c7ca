package bracket

import (
	"time"

	"github.com/google/uuid"
)

type RoundStatus string

const (
	RoundPending    RoundStatus = "pending"
	RoundInProgress RoundStatus = "in_progress"
	RoundCompleted  RoundStatus = "completed"
)

// Round is one stage of a category bracket. (TournamentID, Category, RoundIndex) identifies it;
// the stage label is for display only.
type Round struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	TournamentID     uuid.UUID   `db:"tournament_id" json:"tournamentId"`
	Category         string      `db:"category" json:"category"`
	Modality         string      `db:"modality" json:"modality"`
	RoundIndex       int         `db:"round_index" json:"roundIndex"`
	Name             string      `db:"name" json:"name"`
	Stage            string      `db:"stage" json:"stage"`
	MatchesCount     int         `db:"matches_count" json:"matchesCount"`
	CompletedMatches int         `db:"completed_matches" json:"completedMatches"`
	Status           RoundStatus `db:"status" json:"status"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}

// Progress derives the round status from how many of its matches are complete.
func Progress(completed, total int) RoundStatus {
	switch {
	case completed <= 0:
		return RoundPending
	case completed >= total:
		return RoundCompleted
	default:
		return RoundInProgress
	}
}
