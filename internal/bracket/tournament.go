package bracket

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "DRAFT"
	TournamentActive    TournamentStatus = "ACTIVE"
	TournamentCompleted TournamentStatus = "COMPLETED"
)

type BracketType string

const (
	SingleElimination BracketType = "single_elimination"
	DoubleElimination BracketType = "double_elimination"
)

// ParseBracketType defaults to single elimination when raw is empty.
func ParseBracketType(raw string) (BracketType, error) {
	switch BracketType(raw) {
	case "":
		return SingleElimination, nil
	case SingleElimination, DoubleElimination:
		return BracketType(raw), nil
	default:
		return "", fmt.Errorf("unknown bracket type %q", raw)
	}
}

// Category is one competitive division of a tournament, e.g. M_OPEN or MX_A.
type Category struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Modality string `json:"modality"`
}

// Categories is stored as a JSON array in a single text column.
type Categories []Category

func (c Categories) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Categories) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = Categories{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Categories", src)
	}
	return json.Unmarshal(raw, c)
}

func (c Categories) Codes() []string {
	codes := make([]string, 0, len(c))
	for _, cat := range c {
		codes = append(codes, cat.Code)
	}
	return codes
}

type Tournament struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	ClubID     uuid.UUID        `db:"club_id" json:"clubId"`
	Name       string           `db:"name" json:"name"`
	Status     TournamentStatus `db:"status" json:"status"`
	Categories Categories       `db:"categories" json:"categories"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}
