package metrics

// Metrics defines the instrumentation used by the bracket services.
// This decouples the services from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncBracketsGenerated(categories int)
	AddMatchesCreated(count int)
	IncCategoryErrors(count int)
	ObserveGenerationDuration(seconds float64)
	IncResultsRecorded()
	IncTournamentsCompleted()
}
