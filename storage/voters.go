package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type VoterStorage interface {
	Get(ctx context.Context, id string) (*VoterRegistration, error)
	GetByWallet(ctx context.Context, wallet string) (*VoterRegistration, error)
	GetByNationalID(ctx context.Context, nationalID string) (*VoterRegistration, error)
	GetByEmail(ctx context.Context, email string) (*VoterRegistration, error)
	GetAll(ctx context.Context) ([]*VoterRegistration, error)
	// Create rejects an already-used wallet, national id or email with the
	// matching ErrDuplicate* error.
	Create(ctx context.Context, registration *VoterRegistration) error
	Update(ctx context.Context, registration *VoterRegistration) error
	Delete(ctx context.Context, id string) error
}

type MemoryVoterStorage struct {
	mu            sync.RWMutex
	registrations map[string]*VoterRegistration
	byWallet      map[string]string // lower(wallet) -> id
	byNationalID  map[string]string
	byEmail       map[string]string // lower(email) -> id
}

func NewMemoryVoterStorage() *MemoryVoterStorage {
	return &MemoryVoterStorage{
		registrations: make(map[string]*VoterRegistration),
		byWallet:      make(map[string]string),
		byNationalID:  make(map[string]string),
		byEmail:       make(map[string]string),
	}
}

func (s *MemoryVoterStorage) Get(_ context.Context, id string) (*VoterRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	registration, ok := s.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *registration
	return &copied, nil
}

func (s *MemoryVoterStorage) GetByWallet(_ context.Context, wallet string) (*VoterRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byWallet[strings.ToLower(wallet)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.registrations[id]
	return &copied, nil
}

func (s *MemoryVoterStorage) GetByNationalID(_ context.Context, nationalID string) (*VoterRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNationalID[nationalID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.registrations[id]
	return &copied, nil
}

func (s *MemoryVoterStorage) GetByEmail(_ context.Context, email string) (*VoterRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.registrations[id]
	return &copied, nil
}

func (s *MemoryVoterStorage) GetAll(_ context.Context) ([]*VoterRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*VoterRegistration, 0, len(s.registrations))
	for _, registration := range s.registrations {
		copied := *registration
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegisteredAt.After(result[j].RegisteredAt)
	})
	return result, nil
}

func (s *MemoryVoterStorage) Create(_ context.Context, registration *VoterRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registrations[registration.ID]; ok {
		return ErrItemWithIDAlreadyExists
	}
	// Uniqueness lives under the same write lock to stay race-free.
	if _, ok := s.byWallet[strings.ToLower(registration.WalletAddress)]; ok {
		return ErrDuplicateWallet
	}
	if _, ok := s.byNationalID[registration.NationalID]; ok {
		return ErrDuplicateNationalID
	}
	if _, ok := s.byEmail[strings.ToLower(registration.Email)]; ok {
		return ErrDuplicateEmail
	}

	copied := *registration
	s.registrations[registration.ID] = &copied
	s.index(&copied)
	return nil
}

func (s *MemoryVoterStorage) Update(_ context.Context, registration *VoterRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.registrations[registration.ID]
	if !ok {
		return ErrNotFound
	}
	s.unindex(previous)

	copied := *registration
	s.registrations[registration.ID] = &copied
	s.index(&copied)
	return nil
}

func (s *MemoryVoterStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	registration, ok := s.registrations[id]
	if !ok {
		return ErrNotFound
	}
	s.unindex(registration)
	delete(s.registrations, id)
	return nil
}

func (s *MemoryVoterStorage) index(r *VoterRegistration) {
	s.byWallet[strings.ToLower(r.WalletAddress)] = r.ID
	s.byNationalID[r.NationalID] = r.ID
	s.byEmail[strings.ToLower(r.Email)] = r.ID
}

func (s *MemoryVoterStorage) unindex(r *VoterRegistration) {
	delete(s.byWallet, strings.ToLower(r.WalletAddress))
	delete(s.byNationalID, r.NationalID)
	delete(s.byEmail, strings.ToLower(r.Email))
}
