package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	bracketsGenerated    int
	matchesCreated       int
	categoryErrors       int
	generationDurations  []float64
	resultsRecorded      int
	tournamentsCompleted int
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncBracketsGenerated(categories int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bracketsGenerated += categories
}

func (m *Mock) AddMatchesCreated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated += count
}

func (m *Mock) IncCategoryErrors(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryErrors += count
}

func (m *Mock) ObserveGenerationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations = append(m.generationDurations, seconds)
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncTournamentsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsCompleted++
}

// BracketsGenerated returns the number of category brackets reported.
func (m *Mock) BracketsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bracketsGenerated
}

// MatchesCreated returns the number of matches reported.
func (m *Mock) MatchesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

func (m *Mock) CategoryErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoryErrors
}

func (m *Mock) GenerationCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generationDurations)
}

func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

func (m *Mock) TournamentsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsCompleted
}
