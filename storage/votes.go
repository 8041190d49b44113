package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type VoteStorage interface {
	// Create rejects a second vote for the same (voter, election) pair
	// with ErrDuplicateVote.
	Create(ctx context.Context, vote *Vote) error
	GetByVoterAndElection(ctx context.Context, voter, electionID string) (*Vote, error)
	ListByAddress(ctx context.Context, voter string) ([]*Vote, error)
	GetAll(ctx context.Context) ([]*Vote, error)
}

type MemoryVoteStorage struct {
	mu    sync.RWMutex
	votes map[string]*Vote // keyed by voter|election
}

func NewMemoryVoteStorage() *MemoryVoteStorage {
	return &MemoryVoteStorage{votes: make(map[string]*Vote)}
}

func voteKey(voter, electionID string) string {
	return strings.ToLower(voter) + "|" + electionID
}

func (s *MemoryVoteStorage) Create(_ context.Context, vote *Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey(vote.VoterAddress, vote.ElectionID)
	if _, ok := s.votes[key]; ok {
		return ErrDuplicateVote
	}
	copied := *vote
	s.votes[key] = &copied
	return nil
}

func (s *MemoryVoteStorage) GetByVoterAndElection(_ context.Context, voter, electionID string) (*Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vote, ok := s.votes[voteKey(voter, electionID)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *vote
	return &copied, nil
}

func (s *MemoryVoteStorage) ListByAddress(_ context.Context, voter string) ([]*Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Vote, 0)
	for _, vote := range s.votes {
		if strings.EqualFold(vote.VoterAddress, voter) {
			copied := *vote
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (s *MemoryVoteStorage) GetAll(_ context.Context) ([]*Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		copied := *vote
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}
