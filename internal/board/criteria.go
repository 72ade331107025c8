package board

import (
	"sync"

	"taskboard/internal/service"
)

// CriteriaStore holds the filter and sort applied to the view.
// It always holds fully defined criteria; Reset restores the defaults.
type CriteriaStore struct {
	mu       sync.RWMutex
	criteria service.Criteria
}

// NewCriteriaStore creates a store holding the default criteria.
func NewCriteriaStore() *CriteriaStore {
	return &CriteriaStore{criteria: service.DefaultCriteria()}
}

// Criteria returns the current criteria.
func (s *CriteriaStore) Criteria() service.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// SetFilter replaces the filter.
func (s *CriteriaStore) SetFilter(f service.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Filter = f
}

// SetSort replaces the sort. An empty key means the default key.
func (s *CriteriaStore) SetSort(srt service.Sort) {
	if srt.Key == "" {
		srt.Key = service.DefaultSortKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Sort = srt
}

// Reset restores the default criteria.
func (s *CriteriaStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = service.DefaultCriteria()
}

// IsFilterActive reports whether any filter field is set.
func (s *CriteriaStore) IsFilterActive() bool {
	return !s.Criteria().Filter.IsZero()
}

// IsSortActive reports whether the sort differs from the default.
func (s *CriteriaStore) IsSortActive() bool {
	return !s.Criteria().Sort.IsDefault()
}
