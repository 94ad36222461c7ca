package bracket

import (
	"time"

	"github.com/google/uuid"
)

// TBD marks a slot still waiting for the winner of an earlier match.
const TBD = "TBD"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchCompleted MatchStatus = "COMPLETED"
)

type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`
	RoundID      uuid.UUID `db:"round_id" json:"roundId"`

	// Position in the bracket, used to find the slot a winner feeds into
	Category    string `db:"category" json:"category"`
	RoundIndex  int    `db:"round_index" json:"roundIndex"`
	RoundLabel  string `db:"round_label" json:"round"`
	MatchNumber int    `db:"match_number" json:"matchNumber"`

	Team1Name    string  `db:"team1_name" json:"team1Name"`
	Team1Player1 *string `db:"team1_player1" json:"team1Player1,omitempty"`
	Team1Player2 *string `db:"team1_player2" json:"team1Player2,omitempty"`
	Team2Name    string  `db:"team2_name" json:"team2Name"`
	Team2Player1 *string `db:"team2_player1" json:"team2Player1,omitempty"`
	Team2Player2 *string `db:"team2_player2" json:"team2Player2,omitempty"`

	Status MatchStatus `db:"status" json:"status"`
	Winner *string     `db:"winner" json:"winner,omitempty"`
	Score  *string     `db:"score" json:"score,omitempty"`
	IsBye  bool        `db:"is_bye" json:"isBye"`

	CourtNumber *int       `db:"court_number" json:"courtNumber"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduledAt"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (m *Match) TeamsDecided() bool {
	return m.Team1Name != TBD && m.Team2Name != TBD
}

// SlotOf returns 1 or 2 for a team playing in the match, 0 otherwise.
func (m *Match) SlotOf(teamName string) int {
	switch teamName {
	case TBD, "":
		return 0
	case m.Team1Name:
		return 1
	case m.Team2Name:
		return 2
	}
	return 0
}

// IsWinner reports whether the team in slot won the completed match.
func (m *Match) IsWinner(slot int) bool {
	return m.Status == MatchCompleted && m.Winner != nil && m.SlotOf(*m.Winner) == slot
}

// SetTeam writes a team into slot 1 or 2.
func (m *Match) SetTeam(slot int, team Team) {
	p1, p2 := optional(team.Player1Name), optional(team.Player2Name)
	if slot == 1 {
		m.Team1Name, m.Team1Player1, m.Team1Player2 = team.TeamName, p1, p2
		return
	}
	m.Team2Name, m.Team2Player1, m.Team2Player2 = team.TeamName, p1, p2
}

// TeamInSlot rebuilds the team occupying slot 1 or 2.
func (m *Match) TeamInSlot(slot int) Team {
	if slot == 1 {
		return Team{TeamName: m.Team1Name, Player1Name: deref(m.Team1Player1), Player2Name: deref(m.Team1Player2), Category: m.Category}
	}
	return Team{TeamName: m.Team2Name, Player1Name: deref(m.Team2Player1), Player2Name: deref(m.Team2Player2), Category: m.Category}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
