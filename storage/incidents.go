package storage

import (
	"context"
	"sort"
	"sync"
)

type IncidentFilter struct {
	Category   string
	Status     string
	Severity   string
	ReportedBy string
	Verified   *bool
}

func (f IncidentFilter) matches(r *IncidentReport) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Status != "" && string(r.Status) != f.Status {
		return false
	}
	if f.Severity != "" && string(r.Severity) != f.Severity {
		return false
	}
	if f.ReportedBy != "" && r.ReportedBy != f.ReportedBy {
		return false
	}
	if f.Verified != nil && r.Verified != *f.Verified {
		return false
	}
	return true
}

type IncidentStorage interface {
	Get(ctx context.Context, id string) (*IncidentReport, error)
	// List returns matching reports sorted newest-first.
	List(ctx context.Context, filter IncidentFilter) ([]*IncidentReport, error)
	Create(ctx context.Context, report *IncidentReport) error
	Update(ctx context.Context, report *IncidentReport) error
	Delete(ctx context.Context, id string) error
}

type MemoryIncidentStorage struct {
	mu      sync.RWMutex
	reports map[string]*IncidentReport
}

func NewMemoryIncidentStorage() *MemoryIncidentStorage {
	return &MemoryIncidentStorage{reports: make(map[string]*IncidentReport)}
}

func (s *MemoryIncidentStorage) Get(_ context.Context, id string) (*IncidentReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (s *MemoryIncidentStorage) List(_ context.Context, filter IncidentFilter) ([]*IncidentReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*IncidentReport, 0, len(s.reports))
	for _, report := range s.reports {
		if filter.matches(report) {
			copied := *report
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (s *MemoryIncidentStorage) Create(_ context.Context, report *IncidentReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[report.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	copied := *report
	s.reports[report.ID] = &copied
	return nil
}

func (s *MemoryIncidentStorage) Update(_ context.Context, report *IncidentReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[report.ID]; !ok {
		return ErrNotFound
	}
	copied := *report
	s.reports[report.ID] = &copied
	return nil
}

func (s *MemoryIncidentStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
