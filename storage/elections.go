package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type ElectionFilter struct {
	Type   string
	Status string
}

func (f ElectionFilter) matches(e *Election) bool {
	if f.Type != "" && string(e.Type) != f.Type {
		return false
	}
	if f.Status != "" && string(e.Status) != f.Status {
		return false
	}
	return true
}

type ElectionStorage interface {
	Get(ctx context.Context, id string) (*Election, error)
	// GetByTitle does a case-insensitive title lookup, used for uniqueness checks.
	GetByTitle(ctx context.Context, title string) (*Election, error)
	List(ctx context.Context, filter ElectionFilter) ([]*Election, error)
	// Create rejects an already-used title with ErrDuplicateTitle.
	Create(ctx context.Context, election *Election) error
	Update(ctx context.Context, election *Election) error
}

type MemoryElectionStorage struct {
	mu        sync.RWMutex
	elections map[string]*Election
	byTitle   map[string]string // lower(title) -> id
}

func NewMemoryElectionStorage() *MemoryElectionStorage {
	return &MemoryElectionStorage{
		elections: make(map[string]*Election),
		byTitle:   make(map[string]string),
	}
}

func (s *MemoryElectionStorage) Get(_ context.Context, id string) (*Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	election, ok := s.elections[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *election
	return &copied, nil
}

func (s *MemoryElectionStorage) GetByTitle(_ context.Context, title string) (*Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTitle[strings.ToLower(title)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.elections[id]
	return &copied, nil
}

func (s *MemoryElectionStorage) List(_ context.Context, filter ElectionFilter) ([]*Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Election, 0, len(s.elections))
	for _, election := range s.elections {
		if filter.matches(election) {
			copied := *election
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryElectionStorage) Create(_ context.Context, election *Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.elections[election.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	if _, ok := s.byTitle[strings.ToLower(election.Title)]; ok {
		return ErrDuplicateTitle
	}
	copied := *election
	s.elections[election.ID] = &copied
	s.byTitle[strings.ToLower(copied.Title)] = copied.ID
	return nil
}

func (s *MemoryElectionStorage) Update(_ context.Context, election *Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.elections[election.ID]
	if !ok {
		return ErrNotFound
	}
	delete(s.byTitle, strings.ToLower(previous.Title))

	copied := *election
	s.elections[election.ID] = &copied
	s.byTitle[strings.ToLower(copied.Title)] = copied.ID
	return nil
}
