package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/Sanenelisiwe1975/Baxela/api/controllers/testing"
	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCandidateController(t *testing.T) (*gin.Engine, *storage.MemoryCandidateStorage) {
	t.Helper()
	logging.Log = logrus.New()

	store := storage.NewMemoryCandidateStorage()
	controller := NewCandidateController(store)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller.RegisterRoutes(r)

	return r, store
}

func validCandidacy(wallet string) models.CandidateCreateRequest {
	return models.CandidateCreateRequest{
		Name:          "Thandi Nkosi",
		Party:         "Progress Party",
		Position:      "Mayor",
		Bio:           "Community organizer for two decades",
		Experience:    "City council member 2018-2024",
		Platform:      "Transparent budgets and safer streets",
		WalletAddress: wallet,
		ElectionID:    "city-election-municipal-2026-abc123",
	}
}

func TestCreateCandidate(t *testing.T) {
	router, _ := setupTestCandidateController(t)

	t.Run("Happy path - candidate starts unverified", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/candidates",
			validCandidacy("0x1212121212121212121212121212121212121212"), nil)

		require.Equal(t, http.StatusCreated, w.Code)
		var candidate storage.Candidate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidate))
		assert.False(t, candidate.Verified)
		assert.NotEmpty(t, candidate.ID)
	})

	t.Run("Unhappy path - one candidacy per wallet", func(t *testing.T) {
		wallet := "0x3434343434343434343434343434343434343434"
		w := testutils.PerformRequest(router, http.MethodPost, "/api/candidates", validCandidacy(wallet), nil)
		require.Equal(t, http.StatusCreated, w.Code)

		w = testutils.PerformRequest(router, http.MethodPost, "/api/candidates", validCandidacy(wallet), nil)
		require.Equal(t, http.StatusConflict, w.Code)

		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Wallet address already has a registered candidacy", response.Error)
	})

	t.Run("Unhappy path - missing fields", func(t *testing.T) {
		req := validCandidacy("0x5656565656565656565656565656565656565656")
		req.Party = ""
		req.Bio = ""
		w := testutils.PerformRequest(router, http.MethodPost, "/api/candidates", req, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Errors, "party is required")
		assert.Contains(t, response.Errors, "bio is required")
	})
}

func TestUpdateCandidate(t *testing.T) {
	router, _ := setupTestCandidateController(t)

	ownerWallet := "0x7878787878787878787878787878787878787878"
	w := testutils.PerformRequest(router, http.MethodPost, "/api/candidates", validCandidacy(ownerWallet), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var candidate storage.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidate))

	t.Run("Unhappy path - non-owner cannot update", func(t *testing.T) {
		platform := "Completely different promises"
		w := testutils.PerformRequest(router, http.MethodPut, "/api/candidates/"+candidate.ID,
			models.CandidateUpdateRequest{Platform: &platform},
			map[string]string{"x-wallet-address": "0x9090909090909090909090909090909090909090"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Happy path - owner updates platform, identity fields untouched", func(t *testing.T) {
		platform := "Updated platform statement"
		w := testutils.PerformRequest(router, http.MethodPut, "/api/candidates/"+candidate.ID,
			models.CandidateUpdateRequest{Platform: &platform},
			map[string]string{"x-wallet-address": ownerWallet})

		require.Equal(t, http.StatusOK, w.Code)
		var updated storage.Candidate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Updated platform statement", updated.Platform)
		assert.Equal(t, ownerWallet, updated.WalletAddress)
		assert.Equal(t, candidate.ElectionID, updated.ElectionID)
		assert.Equal(t, candidate.RegistrationDate.Unix(), updated.RegistrationDate.Unix())
	})

	t.Run("Unhappy path - non-owner cannot delete", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodDelete, "/api/candidates/"+candidate.ID, nil,
			map[string]string{"x-wallet-address": "0x9090909090909090909090909090909090909090"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Happy path - owner withdraws candidacy", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodDelete, "/api/candidates/"+candidate.ID, nil,
			map[string]string{"x-wallet-address": ownerWallet})

		require.Equal(t, http.StatusOK, w.Code)

		again := testutils.PerformRequest(router, http.MethodGet, "/api/candidates/"+candidate.ID, nil, nil)
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

func TestListCandidates(t *testing.T) {
	router, _ := setupTestCandidateController(t)

	first := validCandidacy("0x1313131313131313131313131313131313131313")
	second := validCandidacy("0x2424242424242424242424242424242424242424")
	second.Party = "Unity Party"
	for _, req := range []models.CandidateCreateRequest{first, second} {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/candidates", req, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("Happy path - filter by party", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/candidates?party=Unity%20Party", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var candidates []*storage.Candidate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
		require.Len(t, candidates, 1)
		assert.Equal(t, "Unity Party", candidates[0].Party)
	})
}
