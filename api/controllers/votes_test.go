package controllers

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	testutils "github.com/Sanenelisiwe1975/Baxela/api/controllers/testing"
	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/chain"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestVoteController(t *testing.T) (*gin.Engine, *storage.MemoryElectionStorage, *storage.MemoryCandidateStorage) {
	t.Helper()
	logging.Log = logrus.New()

	voteStore := storage.NewMemoryVoteStorage()
	electionStore := storage.NewMemoryElectionStorage()
	candidateStore := storage.NewMemoryCandidateStorage()

	controller := NewVoteController(voteStore, electionStore, candidateStore, &chain.MockPayments{})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller.RegisterRoutes(r)

	return r, electionStore, candidateStore
}

func seedElectionAndCandidate(t *testing.T, electionStore *storage.MemoryElectionStorage, candidateStore *storage.MemoryCandidateStorage, electionID string, status storage.ElectionStatus, verified bool) string {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, electionStore.Create(context.Background(), &storage.Election{
		ID: electionID, Title: "Election " + electionID, Type: storage.ElectionTypeNational,
		Status: status, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), CreatedAt: now,
	}))

	candidateID := electionID + "-candidate"
	walletHex := hex.EncodeToString([]byte(electionID))
	if len(walletHex) > 40 {
		walletHex = walletHex[:40]
	}
	require.NoError(t, candidateStore.Create(context.Background(), &storage.Candidate{
		ID: candidateID, Name: "Candidate", Party: "Party", Position: "President",
		WalletAddress: "0x" + walletHex + strings.Repeat("c", 40-len(walletHex)), Verified: verified,
		RegistrationDate: now, ElectionID: electionID,
	}))
	return candidateID
}

func TestCastVote(t *testing.T) {
	router, electionStore, candidateStore := setupTestVoteController(t)

	voter := "0x1111111111111111111111111111111111111111"

	t.Run("Happy path - vote recorded with transaction hash", func(t *testing.T) {
		candidateID := seedElectionAndCandidate(t, electionStore, candidateStore, "active-1", storage.ElectionStatusActive, true)

		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "active-1", CandidateID: candidateID, VoterAddress: voter,
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		var response models.VoteCastResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.True(t, strings.HasPrefix(response.Vote.TransactionHash, "0x"))
		assert.Len(t, response.Vote.TransactionHash, 66)

		election, err := electionStore.Get(context.Background(), "active-1")
		require.NoError(t, err)
		assert.Equal(t, 1, election.TotalVotes)
	})

	t.Run("Unhappy path - second vote in same election", func(t *testing.T) {
		candidateID := "active-1-candidate"
		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "active-1", CandidateID: candidateID, VoterAddress: voter,
		}, nil)

		require.Equal(t, http.StatusConflict, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "already voted in this election", response.Error)
	})

	t.Run("Happy path - same voter may vote in a different election", func(t *testing.T) {
		candidateID := seedElectionAndCandidate(t, electionStore, candidateStore, "active-2", storage.ElectionStatusActive, true)

		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "active-2", CandidateID: candidateID, VoterAddress: voter,
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Unhappy path - draft election rejects votes", func(t *testing.T) {
		candidateID := seedElectionAndCandidate(t, electionStore, candidateStore, "draft-1", storage.ElectionStatusDraft, true)

		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "draft-1", CandidateID: candidateID, VoterAddress: voter,
		}, nil)

		require.Equal(t, http.StatusConflict, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "election is not active", response.Error)
	})

	t.Run("Unhappy path - unverified candidate", func(t *testing.T) {
		candidateID := seedElectionAndCandidate(t, electionStore, candidateStore, "active-3", storage.ElectionStatusActive, false)

		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "active-3", CandidateID: candidateID, VoterAddress: voter,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unhappy path - unknown election", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
			ElectionID: "ghost", CandidateID: "whoever", VoterAddress: voter,
		}, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListVotesByAddress(t *testing.T) {
	router, electionStore, candidateStore := setupTestVoteController(t)

	voter := "0x2222222222222222222222222222222222222222"
	candidateID := seedElectionAndCandidate(t, electionStore, candidateStore, "active-list", storage.ElectionStatusActive, true)
	w := testutils.PerformRequest(router, http.MethodPost, "/api/votes", models.VoteCastRequest{
		ElectionID: "active-list", CandidateID: candidateID, VoterAddress: voter,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Happy path - votes returned for address", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/votes?address="+voter, nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response models.VoteListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Votes, 1)
		assert.Equal(t, "active-list", response.Votes[0].ElectionID)
	})

	t.Run("Unhappy path - missing address", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/votes", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
