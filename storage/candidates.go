package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type CandidateFilter struct {
	ElectionID string
	Party      string
	Position   string
	Verified   *bool
}

func (f CandidateFilter) matches(c *Candidate) bool {
	if f.ElectionID != "" && c.ElectionID != f.ElectionID {
		return false
	}
	if f.Party != "" && !strings.EqualFold(c.Party, f.Party) {
		return false
	}
	if f.Position != "" && !strings.EqualFold(c.Position, f.Position) {
		return false
	}
	if f.Verified != nil && c.Verified != *f.Verified {
		return false
	}
	return true
}

type CandidateStorage interface {
	Get(ctx context.Context, id string) (*Candidate, error)
	// GetByWallet looks up a candidacy by owning wallet, one per wallet.
	GetByWallet(ctx context.Context, wallet string) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]*Candidate, error)
	// Create rejects a wallet that already owns a candidacy with
	// ErrDuplicateWallet.
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, candidate *Candidate) error
	Delete(ctx context.Context, id string) error
}

type MemoryCandidateStorage struct {
	mu         sync.RWMutex
	candidates map[string]*Candidate
	byWallet   map[string]string // lower(wallet) -> id
}

func NewMemoryCandidateStorage() *MemoryCandidateStorage {
	return &MemoryCandidateStorage{
		candidates: make(map[string]*Candidate),
		byWallet:   make(map[string]string),
	}
}

func (s *MemoryCandidateStorage) Get(_ context.Context, id string) (*Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidate, ok := s.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *candidate
	return &copied, nil
}

func (s *MemoryCandidateStorage) GetByWallet(_ context.Context, wallet string) (*Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byWallet[strings.ToLower(wallet)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.candidates[id]
	return &copied, nil
}

func (s *MemoryCandidateStorage) List(_ context.Context, filter CandidateFilter) ([]*Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		if filter.matches(candidate) {
			copied := *candidate
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegistrationDate.After(result[j].RegistrationDate)
	})
	return result, nil
}

func (s *MemoryCandidateStorage) Create(_ context.Context, candidate *Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[candidate.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	if _, ok := s.byWallet[strings.ToLower(candidate.WalletAddress)]; ok {
		return ErrDuplicateWallet
	}

	copied := *candidate
	s.candidates[candidate.ID] = &copied
	s.byWallet[strings.ToLower(copied.WalletAddress)] = copied.ID
	return nil
}

func (s *MemoryCandidateStorage) Update(_ context.Context, candidate *Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.candidates[candidate.ID]
	if !ok {
		return ErrNotFound
	}
	delete(s.byWallet, strings.ToLower(previous.WalletAddress))

	copied := *candidate
	s.candidates[candidate.ID] = &copied
	s.byWallet[strings.ToLower(copied.WalletAddress)] = copied.ID
	return nil
}

func (s *MemoryCandidateStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, ok := s.candidates[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byWallet, strings.ToLower(candidate.WalletAddress))
	delete(s.candidates, id)
	return nil
}
