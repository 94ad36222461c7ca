package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/httputil"
	"github.com/padelyzer/bracket-engine/internal/middleware"
	"github.com/padelyzer/bracket-engine/internal/service"
)

type app struct {
	db             *sqlx.DB
	tournaments    *service.TournamentService
	brackets       *service.BracketService
	matches        *service.MatchService
	defaultSeeding bracket.SeedingMethod
	metricsHandler http.Handler
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.PingContext(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", a.metricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireClub)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", a.listTournaments)
			r.Post("/", a.createTournament)

			r.Route("/{id}", func(r chi.Router) {
				r.Post("/registrations", a.registerTeams)
				r.Get("/brackets", a.getBracket)
				r.Post("/brackets", a.generateBrackets)
				r.Get("/brackets/check", a.checkBrackets)
			})
		})

		r.Post("/matches/{id}/result", a.recordResult)
	})

	return r
}
