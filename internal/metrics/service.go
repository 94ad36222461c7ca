package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BracketsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_brackets_generated_total",
			Help: "The total number of category brackets generated.",
		}),
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bracket_matches_created_total",
			Help: "The total number of matches created by bracket generation.",
		}),
		CategoryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bracket_category_errors_total",
			Help: "The total number of categories skipped during bracket generation.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_bracket_generation_duration_seconds",
			Help:    "The duration of a bracket generation call.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_match_results_recorded_total",
			Help: "The total number of match results recorded.",
		}),
		TournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_tournaments_completed_total",
			Help: "The total number of tournaments that reached a champion in every category.",
		}),
	}

	reg.MustRegister(
		s.BracketsGenerated,
		s.MatchesCreated,
		s.CategoryErrors,
		s.GenerationDuration,
		s.ResultsRecorded,
		s.TournamentsCompleted,
	)

	return s
}

func (s *Service) IncBracketsGenerated(categories int) {
	s.BracketsGenerated.Add(float64(categories))
}

func (s *Service) AddMatchesCreated(count int) {
	s.MatchesCreated.Add(float64(count))
}

func (s *Service) IncCategoryErrors(count int) {
	s.CategoryErrors.Add(float64(count))
}

func (s *Service) ObserveGenerationDuration(seconds float64) {
	s.GenerationDuration.Observe(seconds)
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncTournamentsCompleted() {
	s.TournamentsCompleted.Inc()
}
