package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/httputil"
	"github.com/padelyzer/bracket-engine/internal/middleware"
	"github.com/padelyzer/bracket-engine/internal/service"
)

type createTournamentRequest struct {
	Name       string             `json:"name"`
	Categories bracket.Categories `json:"categories"`
}

type generateRequest struct {
	Categories    []string `json:"categories"`
	SeedingMethod string   `json:"seedingMethod"`
	BracketType   string   `json:"bracketType"`
}

type resultRequest struct {
	Winner string `json:"winner"`
	Score  string `json:"score"`
}

func (a *app) listTournaments(w http.ResponseWriter, r *http.Request) {
	clubID, _ := middleware.GetClubIDFromContext(r.Context())

	tournaments, err := a.tournaments.ListTournaments(r.Context(), clubID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to list tournaments", err)
		return
	}
	if tournaments == nil {
		tournaments = []bracket.Tournament{}
	}
	httputil.WriteJSON(w, http.StatusOK, tournaments)
}

func (a *app) createTournament(w http.ResponseWriter, r *http.Request) {
	clubID, _ := middleware.GetClubIDFromContext(r.Context())

	var req createTournamentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	tournament, err := a.tournaments.CreateTournament(r.Context(), clubID, req.Name, req.Categories)
	if errors.Is(err, service.ErrInvalidInput) {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to create tournament", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tournament)
}

func (a *app) registerTeams(w http.ResponseWriter, r *http.Request) {
	tournament, ok := a.tournamentFromRequest(w, r)
	if !ok {
		return
	}

	var inputs []service.RegistrationInput
	if err := httputil.DecodeJSON(r, &inputs); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	registrations, err := a.tournaments.RegisterTeams(r.Context(), tournament, inputs)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httputil.BadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrTournamentNotOpen):
		httputil.Conflict(w, err.Error(), nil)
	case err != nil:
		httputil.InternalServerError(w, "Failed to register teams", err)
	default:
		httputil.WriteJSON(w, http.StatusCreated, registrations)
	}
}

func (a *app) checkBrackets(w http.ResponseWriter, r *http.Request) {
	tournament, ok := a.tournamentFromRequest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a.brackets.CanGenerateBrackets(r.Context(), tournament.ID))
}

func (a *app) generateBrackets(w http.ResponseWriter, r *http.Request) {
	tournament, ok := a.tournamentFromRequest(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}

	method := a.defaultSeeding
	if req.SeedingMethod != "" {
		parsed, err := bracket.ParseSeedingMethod(req.SeedingMethod)
		if err != nil {
			httputil.BadRequest(w, err.Error(), nil)
			return
		}
		method = parsed
	}
	bracketType, err := bracket.ParseBracketType(req.BracketType)
	if err != nil {
		httputil.BadRequest(w, err.Error(), nil)
		return
	}

	eligibility := a.brackets.CanGenerateBrackets(r.Context(), tournament.ID)
	if !eligibility.CanGenerate {
		httputil.WriteJSON(w, http.StatusBadRequest, eligibility)
		return
	}

	result := a.brackets.GenerateBrackets(r.Context(), service.GenerateParams{
		TournamentID:  tournament.ID,
		Categories:    req.Categories,
		SeedingMethod: method,
		BracketType:   bracketType,
	})
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, result)
}

func (a *app) getBracket(w http.ResponseWriter, r *http.Request) {
	tournament, ok := a.tournamentFromRequest(w, r)
	if !ok {
		return
	}

	view, err := a.tournaments.GetBracket(r.Context(), tournament)
	if err != nil {
		httputil.InternalServerError(w, "Failed to load bracket", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (a *app) recordResult(w http.ResponseWriter, r *http.Request) {
	clubID, _ := middleware.GetClubIDFromContext(r.Context())

	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, "match not found", err)
		return
	}

	var req resultRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, err.Error(), err)
		return
	}
	if req.Winner == "" {
		httputil.BadRequest(w, "winner is required", nil)
		return
	}

	match, err := a.matches.GetMatch(r.Context(), matchID)
	if errors.Is(err, service.ErrMatchNotFound) {
		httputil.NotFound(w, err.Error(), nil)
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to get match", err)
		return
	}
	if _, err := a.tournaments.GetTournament(r.Context(), clubID, match.TournamentID); err != nil {
		// Matches of other clubs are reported as missing
		httputil.NotFound(w, service.ErrMatchNotFound.Error(), err)
		return
	}

	outcome, err := a.matches.RecordMatchResult(r.Context(), matchID, req.Winner, req.Score)
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		httputil.NotFound(w, err.Error(), nil)
	case errors.Is(err, service.ErrMatchAlreadyCompleted), errors.Is(err, service.ErrTeamsNotDecided):
		httputil.Conflict(w, err.Error(), nil)
	case errors.Is(err, service.ErrWinnerNotInMatch):
		httputil.BadRequest(w, err.Error(), nil)
	case err != nil:
		httputil.InternalServerError(w, "Failed to record match result", err)
	default:
		httputil.WriteJSON(w, http.StatusOK, outcome)
	}
}

// tournamentFromRequest writes a 404 when the tournament is missing or owned by another club.
func (a *app) tournamentFromRequest(w http.ResponseWriter, r *http.Request) (*bracket.Tournament, bool) {
	clubID, _ := middleware.GetClubIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, "tournament not found", err)
		return nil, false
	}

	tournament, err := a.tournaments.GetTournament(r.Context(), clubID, id)
	if errors.Is(err, service.ErrTournamentNotFound) {
		httputil.NotFound(w, err.Error(), nil)
		return nil, false
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to get tournament", err)
		return nil, false
	}
	return tournament, true
}
