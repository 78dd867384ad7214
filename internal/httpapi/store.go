package httpapi

import (
	"sync"

	"github.com/rshade/secr-engine/internal/engine"
)

// recentLimit caps the calculations listing.
const recentLimit = 20

// CalculationSummary is the flattened projection returned by the listing
// endpoint. Collaborators read these fields; they never alter the stored
// numeric content.
type CalculationSummary struct {
	ID                   string  `json:"id"`
	OrganisationName     string  `json:"organisation_name"`
	ReportingPeriodStart string  `json:"reporting_period_start"`
	ReportingPeriodEnd   string  `json:"reporting_period_end"`
	TotalTCO2e           float64 `json:"total_t_co2e"`
	Scope1TCO2e          float64 `json:"scope_1_t_co2e"`
	Scope2TCO2e          float64 `json:"scope_2_t_co2e"`
	Scope3TCO2e          float64 `json:"scope_3_t_co2e"`
	DataQualityScore     int     `json:"data_quality_score"`
	CalculatedAt         string  `json:"calculated_at"`
}

// HistoryStore keeps the most recent calculation results in memory, bounded
// by a fixed capacity. Oldest entries are evicted first. Safe for concurrent
// use by the HTTP handlers.
type HistoryStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string // ids, oldest first
	byID     map[string]*engine.CalculationResult
}

// NewHistoryStore creates a store holding at most capacity results.
func NewHistoryStore(capacity int) *HistoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &HistoryStore{
		capacity: capacity,
		byID:     make(map[string]*engine.CalculationResult, capacity),
	}
}

// Put records a result, evicting the oldest entry when over capacity.
func (s *HistoryStore) Put(result *engine.CalculationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[result.ID]; !exists {
		s.order = append(s.order, result.ID)
	}
	s.byID[result.ID] = result

	for len(s.order) > s.capacity {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, evicted)
	}
}

// Get returns the stored result for id, if present.
func (s *HistoryStore) Get(id string) (*engine.CalculationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byID[id]
	return result, ok
}

// Recent returns projections of the newest results, newest first, capped at
// limit.
func (s *HistoryStore) Recent(limit int) []CalculationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]CalculationSummary, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(summaries) < limit; i-- {
		r := s.byID[s.order[i]]
		summaries = append(summaries, CalculationSummary{
			ID:                   r.ID,
			OrganisationName:     r.OrganisationName,
			ReportingPeriodStart: r.ReportingPeriodStart,
			ReportingPeriodEnd:   r.ReportingPeriodEnd,
			TotalTCO2e:           r.Summary.TotalTCO2e,
			Scope1TCO2e:          r.Summary.Scope1TCO2e,
			Scope2TCO2e:          r.Summary.Scope2TCO2e,
			Scope3TCO2e:          r.Summary.Scope3TCO2e,
			DataQualityScore:     r.Summary.DataQualityScore,
			CalculatedAt:         r.CalculatedAt,
		})
	}
	return summaries
}

// Len reports the number of stored results.
func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
