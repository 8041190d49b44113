package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	testutils "github.com/Sanenelisiwe1975/Baxela/api/controllers/testing"
	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestVoterController(t *testing.T) (*gin.Engine, *storage.MemoryVoterStorage, *storage.MemoryElectionStorage) {
	t.Helper()
	logging.Log = logrus.New()

	voterStore := storage.NewMemoryVoterStorage()
	electionStore := storage.NewMemoryElectionStorage()
	policy := transport.NewAdminPolicy([]string{testAdminWallet}, "test-secret")
	rules := NewEligibilityRules("United States", []string{"California", "Texas"})

	controller := NewVoterController(voterStore, electionStore, rules, policy)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller.RegisterRoutes(r)

	return r, voterStore, electionStore
}

func validRegistration(wallet, nationalID, email string) models.VoterRegisterRequest {
	return models.VoterRegisterRequest{
		WalletAddress: wallet,
		FirstName:     "Jordan",
		LastName:      "Mokoena",
		DateOfBirth:   "1990-06-15",
		NationalID:    nationalID,
		Email:         email,
		Phone:         "+1 555 010 2030",
		Address: storage.Address{
			Street:     "12 Elm Street",
			City:       "Sacramento",
			State:      "California",
			PostalCode: "94203",
			Country:    "United States",
		},
	}
}

func TestRegisterVoter(t *testing.T) {
	router, _, _ := setupTestVoterController(t)

	t.Run("Happy path - registration starts pending with no eligible elections", func(t *testing.T) {
		req := validRegistration("0x2222222222222222222222222222222222222222", "9001011234567", "jordan@example.com")
		w := testutils.PerformRequest(router, http.MethodPost, "/api/voters", req, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		var registration storage.VoterRegistration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registration))
		assert.Equal(t, storage.VerificationPending, registration.VerificationStatus)
		assert.Empty(t, registration.EligibleElections)
	})

	t.Run("Unhappy path - under 18 is rejected", func(t *testing.T) {
		req := validRegistration("0x3333333333333333333333333333333333333333", "0801011234567", "kid@example.com")
		req.DateOfBirth = time.Now().UTC().AddDate(-17, 0, 0).Format("2006-01-02")
		w := testutils.PerformRequest(router, http.MethodPost, "/api/voters", req, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Errors, "voter must be at least 18 years old")
	})

	t.Run("Unhappy path - duplicate wallet with different email", func(t *testing.T) {
		first := validRegistration("0x4444444444444444444444444444444444444444", "8505051234567", "first@example.com")
		w := testutils.PerformRequest(router, http.MethodPost, "/api/voters", first, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		second := validRegistration("0x4444444444444444444444444444444444444444", "7909091234567", "second@example.com")
		w = testutils.PerformRequest(router, http.MethodPost, "/api/voters", second, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Errors, "Wallet address already registered")
	})

	t.Run("Unhappy path - duplicate email and national id each reported", func(t *testing.T) {
		first := validRegistration("0x5555555555555555555555555555555555555555", "6606061234567", "dup@example.com")
		w := testutils.PerformRequest(router, http.MethodPost, "/api/voters", first, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		second := validRegistration("0x6666666666666666666666666666666666666666", "6606061234567", "dup@example.com")
		w = testutils.PerformRequest(router, http.MethodPost, "/api/voters", second, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Errors, "National ID already registered")
		assert.Contains(t, response.Errors, "Email already registered")
	})
}

// slowLookupVoterStorage widens the check-then-create window so the test can
// reliably put two registrations in flight at once.
type slowLookupVoterStorage struct {
	storage.VoterStorage
}

func (s *slowLookupVoterStorage) GetByEmail(ctx context.Context, email string) (*storage.VoterRegistration, error) {
	time.Sleep(50 * time.Millisecond)
	return s.VoterStorage.GetByEmail(ctx, email)
}

func TestRegisterVoterConcurrentDuplicates(t *testing.T) {
	logging.Log = logrus.New()

	voterStore := storage.NewMemoryVoterStorage()
	policy := transport.NewAdminPolicy([]string{testAdminWallet}, "test-secret")
	rules := NewEligibilityRules("United States", []string{"California", "Texas"})
	controller := NewVoterController(&slowLookupVoterStorage{voterStore}, storage.NewMemoryElectionStorage(), rules, policy)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller.RegisterRoutes(router)

	req := validRegistration("0xCcCc00000000000000000000000000000000cCcC", "7302021234567", "race@example.com")

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = testutils.PerformRequest(router, http.MethodPost, "/api/voters", req, nil).Code
		}(i)
	}
	wg.Wait()

	// Exactly one request may win; the loser gets the duplicate response.
	sort.Ints(codes)
	assert.Equal(t, []int{http.StatusCreated, http.StatusBadRequest}, codes)

	all, err := voterStore.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVoterVerification(t *testing.T) {
	router, _, electionStore := setupTestVoterController(t)

	now := time.Now().UTC()
	elections := []*storage.Election{
		{ID: "national-1", Title: "National Election", Type: storage.ElectionTypeNational,
			Status: storage.ElectionStatusDraft, StartDate: now, EndDate: now.Add(24 * time.Hour), CreatedAt: now},
		{ID: "provincial-1", Title: "State Election", Type: storage.ElectionTypeProvincial,
			Status: storage.ElectionStatusDraft, StartDate: now, EndDate: now.Add(24 * time.Hour), CreatedAt: now},
		{ID: "municipal-1", Title: "City Election", Type: storage.ElectionTypeMunicipal,
			Status: storage.ElectionStatusDraft, StartDate: now, EndDate: now.Add(24 * time.Hour), CreatedAt: now},
		{ID: "cancelled-1", Title: "Cancelled Election", Type: storage.ElectionTypeNational,
			Status: storage.ElectionStatusCancelled, StartDate: now, EndDate: now.Add(24 * time.Hour), CreatedAt: now},
	}
	for _, election := range elections {
		require.NoError(t, electionStore.Create(context.Background(), election))
	}

	register := func(t *testing.T, req models.VoterRegisterRequest) storage.VoterRegistration {
		t.Helper()
		w := testutils.PerformRequest(router, http.MethodPost, "/api/voters", req, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		var registration storage.VoterRegistration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registration))
		return registration
	}

	t.Run("Happy path - verification computes eligibility from address", func(t *testing.T) {
		registration := register(t, validRegistration(
			"0x7777777777777777777777777777777777777777", "7707071234567", "eligible@example.com"))

		w := testutils.PerformRequest(router, http.MethodPut, "/api/voters/"+registration.ID+"/status",
			models.VoterStatusUpdateRequest{Status: "verified"}, adminHeaders())

		require.Equal(t, http.StatusOK, w.Code)
		var verified storage.VoterRegistration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
		assert.ElementsMatch(t, []string{"national-1", "provincial-1", "municipal-1"}, verified.EligibleElections)
	})

	t.Run("Happy path - non-municipal state only gets national and provincial", func(t *testing.T) {
		req := validRegistration("0x8888888888888888888888888888888888888888", "8808081234567", "nonmuni@example.com")
		req.Address.State = "Nevada"
		registration := register(t, req)

		w := testutils.PerformRequest(router, http.MethodPut, "/api/voters/"+registration.ID+"/status",
			models.VoterStatusUpdateRequest{Status: "verified"}, adminHeaders())

		require.Equal(t, http.StatusOK, w.Code)
		var verified storage.VoterRegistration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
		assert.ElementsMatch(t, []string{"national-1", "provincial-1"}, verified.EligibleElections)
	})

	t.Run("Happy path - rejection clears eligibility", func(t *testing.T) {
		registration := register(t, validRegistration(
			"0x9999999999999999999999999999999999999999", "9909091234567", "rejected@example.com"))

		w := testutils.PerformRequest(router, http.MethodPut, "/api/voters/"+registration.ID+"/status",
			models.VoterStatusUpdateRequest{Status: "verified"}, adminHeaders())
		require.Equal(t, http.StatusOK, w.Code)

		w = testutils.PerformRequest(router, http.MethodPut, "/api/voters/"+registration.ID+"/status",
			models.VoterStatusUpdateRequest{Status: "rejected", Notes: "documents unreadable"}, adminHeaders())

		require.Equal(t, http.StatusOK, w.Code)
		var rejected storage.VoterRegistration
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejected))
		assert.Empty(t, rejected.EligibleElections)
		assert.Equal(t, "documents unreadable", rejected.Notes)
	})

	t.Run("Unhappy path - list-all requires admin", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/voters", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = testutils.PerformRequest(router, http.MethodGet, "/api/voters", nil, adminHeaders())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Happy path - lookup by wallet is public", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet,
			"/api/voters?wallet=0x7777777777777777777777777777777777777777", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
