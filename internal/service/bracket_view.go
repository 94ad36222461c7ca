package service

import (
	"context"
	"sort"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/utils"
)

// MatchView marks which slot won, 0 while the match is open.
type MatchView struct {
	bracket.Match
	WinnerSlot int `json:"winnerSlot,omitempty"`
}

type RoundView struct {
	bracket.Round
	Matches []MatchView `json:"matches"`
}

type CategoryView struct {
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Champion string      `json:"champion,omitempty"`
	Rounds   []RoundView `json:"rounds"`
}

type BracketView struct {
	Tournament *bracket.Tournament `json:"tournament"`
	Categories []CategoryView      `json:"categories"`
}

func (s *TournamentService) GetBracket(ctx context.Context, tournament *bracket.Tournament) (*BracketView, error) {
	rounds, err := s.store.GetRounds(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.GetMatches(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}

	return &BracketView{
		Tournament: tournament,
		Categories: PrepareBracketView(tournament.Categories, rounds, matches),
	}, nil
}

// PrepareBracketView groups matches under their rounds and rounds under their category.
// Categories follow the tournament's configured order; ones without a bracket are left out.
func PrepareBracketView(categories bracket.Categories, rounds []bracket.Round, matches []bracket.Match) []CategoryView {
	byRound := make(map[string][]MatchView)
	for _, m := range matches {
		view := MatchView{Match: m}
		for _, slot := range []int{1, 2} {
			if m.IsWinner(slot) {
				view.WinnerSlot = slot
			}
		}
		byRound[m.RoundID.String()] = append(byRound[m.RoundID.String()], view)
	}

	byCategory := make(map[string][]RoundView)
	for _, r := range rounds {
		ms := byRound[r.ID.String()]
		sort.Slice(ms, func(i, j int) bool {
			return ms[i].MatchNumber < ms[j].MatchNumber
		})
		byCategory[r.Category] = append(byCategory[r.Category], RoundView{Round: r, Matches: ms})
	}

	views := make([]CategoryView, 0, len(byCategory))
	for _, c := range categories {
		rs, ok := byCategory[c.Code]
		if !ok {
			continue
		}
		sort.Slice(rs, func(i, j int) bool {
			return rs[i].RoundIndex < rs[j].RoundIndex
		})

		view := CategoryView{Code: c.Code, Name: c.Name, Rounds: rs}
		final := rs[len(rs)-1]
		if len(final.Matches) == 1 && final.Matches[0].WinnerSlot != 0 {
			view.Champion = utils.OrZero(final.Matches[0].Winner)
		}
		views = append(views, view)
	}

	return views
}
