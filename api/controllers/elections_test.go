package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/Sanenelisiwe1975/Baxela/api/controllers/testing"
	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestElectionController(t *testing.T) (*gin.Engine, *storage.MemoryElectionStorage) {
	t.Helper()
	logging.Log = logrus.New()

	electionStore := storage.NewMemoryElectionStorage()
	controller := NewElectionController(electionStore)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller.RegisterRoutes(r)

	return r, electionStore
}

func TestListElections(t *testing.T) {
	router, electionStore := setupTestElectionController(t)

	now := time.Now().UTC()
	elections := []*storage.Election{
		{ID: "national-active", Title: "General Election 2026", Type: storage.ElectionTypeNational,
			Status: storage.ElectionStatusActive, CreatedAt: now},
		{ID: "national-draft", Title: "General Election 2031", Type: storage.ElectionTypeNational,
			Status: storage.ElectionStatusDraft, CreatedAt: now.Add(-time.Hour)},
		{ID: "municipal-active", Title: "City Council 2026", Type: storage.ElectionTypeMunicipal,
			Status: storage.ElectionStatusActive, CreatedAt: now.Add(-2 * time.Hour)},
	}
	for _, election := range elections {
		require.NoError(t, electionStore.Create(context.Background(), election))
	}

	list := func(t *testing.T, path string) []storage.Election {
		t.Helper()
		w := testutils.PerformRequest(router, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var result []storage.Election
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		return result
	}

	t.Run("Happy path - all elections newest-first", func(t *testing.T) {
		result := list(t, "/api/elections")
		require.Len(t, result, 3)
		assert.Equal(t, "national-active", result[0].ID)
		assert.Equal(t, "national-draft", result[1].ID)
		assert.Equal(t, "municipal-active", result[2].ID)
	})

	t.Run("Happy path - type filter", func(t *testing.T) {
		result := list(t, "/api/elections?type=municipal")
		require.Len(t, result, 1)
		assert.Equal(t, "municipal-active", result[0].ID)
	})

	t.Run("Happy path - status filter", func(t *testing.T) {
		result := list(t, "/api/elections?status=active")
		require.Len(t, result, 2)
		assert.Equal(t, "national-active", result[0].ID)
		assert.Equal(t, "municipal-active", result[1].ID)
	})

	t.Run("Happy path - combined filters", func(t *testing.T) {
		result := list(t, "/api/elections?type=national&status=draft")
		require.Len(t, result, 1)
		assert.Equal(t, "national-draft", result[0].ID)
	})

	t.Run("Happy path - no matches is an empty list", func(t *testing.T) {
		result := list(t, "/api/elections?status=completed")
		assert.Empty(t, result)
	})
}

func TestGetElection(t *testing.T) {
	router, electionStore := setupTestElectionController(t)

	require.NoError(t, electionStore.Create(context.Background(), &storage.Election{
		ID: "e1", Title: "General Election 2026", Type: storage.ElectionTypeNational,
		Status: storage.ElectionStatusActive, CreatedAt: time.Now().UTC(),
	}))

	t.Run("Happy path - election by id", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/elections/e1", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var election storage.Election
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &election))
		assert.Equal(t, "General Election 2026", election.Title)
	})

	t.Run("Unhappy path - unknown id", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/elections/nope", nil, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "election not found", response.Error)
	})
}
