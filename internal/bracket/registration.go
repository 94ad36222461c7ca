package bracket

import (
	"time"

	"github.com/google/uuid"
)

// Registration is a team entry for a tournament. Only confirmed registrations are bracketed;
// check-in is a day-of concern and plays no part in generation.
type Registration struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`
	TeamName     string    `db:"team_name" json:"teamName"`
	Player1Name  string    `db:"player1_name" json:"player1Name"`
	Player2Name  string    `db:"player2_name" json:"player2Name"`
	Category     string    `db:"category" json:"category"`
	Modality     string    `db:"modality" json:"modality"`
	Confirmed    bool      `db:"confirmed" json:"confirmed"`
	CheckedIn    bool      `db:"checked_in" json:"checkedIn"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type Team struct {
	TeamName    string
	Player1Name string
	Player2Name string
	Category    string
	Modality    string
}

func (r Registration) Team() Team {
	return Team{
		TeamName:    r.TeamName,
		Player1Name: r.Player1Name,
		Player2Name: r.Player2Name,
		Category:    r.Category,
		Modality:    r.Modality,
	}
}

// GroupByCategory keeps registration order within each category.
func GroupByCategory(registrations []Registration) map[string][]Team {
	teams := make(map[string][]Team)
	for _, r := range registrations {
		teams[r.Category] = append(teams[r.Category], r.Team())
	}
	return teams
}
