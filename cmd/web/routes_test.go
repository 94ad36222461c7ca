package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelyzer/bracket-engine/internal/bracket"
	"github.com/padelyzer/bracket-engine/internal/metrics"
	"github.com/padelyzer/bracket-engine/internal/middleware"
	"github.com/padelyzer/bracket-engine/internal/service"
	"github.com/padelyzer/bracket-engine/internal/store"
	"github.com/padelyzer/bracket-engine/internal/testutil"
)

var testClubID = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	database := testutil.NewTestDB(t)
	tournamentStore := store.NewTournamentStore(database)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)

	return newRouter(&app{
		db:             database,
		tournaments:    service.NewTournamentService(database, tournamentStore),
		brackets:       service.NewBracketService(database, tournamentStore, bracket.NewSeeder(rand.New(rand.NewSource(7))), metricsSvc),
		matches:        service.NewMatchService(database, tournamentStore, metricsSvc),
		defaultSeeding: bracket.SeedRandom,
		metricsHandler: metrics.NewMetricsHandler(reg),
	})
}

func do(t *testing.T, h http.Handler, method, path string, clubID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if clubID != uuid.Nil {
		req.Header.Set(middleware.ClubHeader, clubID.String())
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func createTournament(t *testing.T, h http.Handler, teams map[string]int) bracket.Tournament {
	t.Helper()

	var categories bracket.Categories
	var registrations []service.RegistrationInput
	for _, code := range []string{"M_OPEN", "F_OPEN"} {
		n, ok := teams[code]
		if !ok {
			continue
		}
		categories = append(categories, bracket.Category{Code: code, Name: code, Modality: code[:1]})
		for i := 0; i < n; i++ {
			registrations = append(registrations, service.RegistrationInput{
				TeamName:  code + " " + string(rune('A'+i)),
				Category:  code,
				Confirmed: true,
			})
		}
	}

	rec := do(t, h, http.MethodPost, "/tournaments", testClubID, map[string]any{"name": "Copa", "categories": categories})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tournament := decode[bracket.Tournament](t, rec)

	rec = do(t, h, http.MethodPost, "/tournaments/"+tournament.ID.String()+"/registrations", testClubID, registrations)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return tournament
}

func TestHealthAndMetrics(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/health", uuid.Nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = do(t, h, http.MethodGet, "/metrics", uuid.Nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "padel_brackets_generated_total")
}

func TestClubScoping(t *testing.T) {
	h := setupRouter(t)
	tournament := createTournament(t, h, map[string]int{"M_OPEN": 2})
	path := "/tournaments/" + tournament.ID.String() + "/brackets/check"

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, path, uuid.Nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, path, uuid.New(), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/tournaments/not-a-uuid/brackets", testClubID, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, path, testClubID, nil).Code)

	rec := do(t, h, http.MethodGet, "/tournaments", uuid.New(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]bracket.Tournament](t, rec))

	rec = do(t, h, http.MethodGet, "/tournaments", testClubID, nil)
	assert.Len(t, decode[[]bracket.Tournament](t, rec), 1)
}

func TestCreateTournament_Invalid(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/tournaments", testClubID, map[string]any{"name": "Copa"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/tournaments", testClubID, map[string]any{"title": "Copa"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateAndPlayBracket(t *testing.T) {
	h := setupRouter(t)
	tournament := createTournament(t, h, map[string]int{"M_OPEN": 2, "F_OPEN": 1})
	base := "/tournaments/" + tournament.ID.String()

	rec := do(t, h, http.MethodGet, base+"/brackets/check", testClubID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	eligibility := decode[service.Eligibility](t, rec)
	assert.True(t, eligibility.CanGenerate)
	assert.Equal(t, 3, eligibility.Details.TotalTeams)

	rec = do(t, h, http.MethodPost, base+"/brackets", testClubID, map[string]any{"seedingMethod": "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/brackets", testClubID, map[string]any{"seedingMethod": "ranked"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[service.GenerationResult](t, rec)
	assert.Equal(t, []string{"M_OPEN"}, result.CategoriesProcessed)
	assert.Len(t, result.Errors, 1)

	rec = do(t, h, http.MethodPost, base+"/brackets", testClubID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode[service.Eligibility](t, rec).CanGenerate)

	rec = do(t, h, http.MethodGet, base+"/brackets", testClubID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[service.BracketView](t, rec)
	require.Len(t, view.Categories, 1)
	require.Len(t, view.Categories[0].Rounds, 1)
	final := view.Categories[0].Rounds[0].Matches[0]
	assert.Equal(t, "Final", final.RoundLabel)

	resultPath := "/matches/" + final.ID.String() + "/result"

	rec = do(t, h, http.MethodPost, resultPath, testClubID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, resultPath, testClubID, map[string]string{"winner": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, resultPath, uuid.New(), map[string]string{"winner": final.Team1Name})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, resultPath, testClubID, map[string]string{"winner": final.Team1Name, "score": "6-2 6-2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	outcome := decode[service.ResultOutcome](t, rec)
	assert.Equal(t, final.Team1Name, outcome.Champion)
	assert.True(t, outcome.TournamentCompleted)

	rec = do(t, h, http.MethodPost, resultPath, testClubID, map[string]string{"winner": final.Team1Name})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/matches/"+uuid.NewString()+"/result", testClubID, map[string]string{"winner": "A"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/registrations", testClubID, []service.RegistrationInput{{TeamName: "Late", Category: "M_OPEN"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGenerateBrackets_NothingToGenerate(t *testing.T) {
	h := setupRouter(t)
	tournament := createTournament(t, h, map[string]int{"M_OPEN": 1, "F_OPEN": 1})

	rec := do(t, h, http.MethodPost, "/tournaments/"+tournament.ID.String()+"/brackets", testClubID, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	result := decode[service.GenerationResult](t, rec)
	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 2)
}
