package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the bracket engine.
type Service struct {
	BracketsGenerated    prometheus.Counter
	MatchesCreated       prometheus.Counter
	CategoryErrors       prometheus.Counter
	GenerationDuration   prometheus.Histogram
	ResultsRecorded      prometheus.Counter
	TournamentsCompleted prometheus.Counter
}
