package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EligibilityRules decides which election types a verified voter may take
// part in, based on their registered address.
type EligibilityRules struct {
	Country         string
	MunicipalStates map[string]bool
}

func NewEligibilityRules(country string, municipalStates []string) EligibilityRules {
	states := make(map[string]bool, len(municipalStates))
	for _, state := range municipalStates {
		states[strings.ToLower(strings.TrimSpace(state))] = true
	}
	return EligibilityRules{Country: country, MunicipalStates: states}
}

func (r EligibilityRules) allows(electionType storage.ElectionType, address storage.Address) bool {
	switch electionType {
	case storage.ElectionTypeNational:
		return true
	case storage.ElectionTypeProvincial:
		return strings.EqualFold(address.Country, r.Country)
	case storage.ElectionTypeMunicipal:
		return strings.EqualFold(address.Country, r.Country) &&
			r.MunicipalStates[strings.ToLower(strings.TrimSpace(address.State))]
	}
	return false
}

type VoterController struct {
	voterStorage    storage.VoterStorage
	electionStorage storage.ElectionStorage
	rules           EligibilityRules
	adminPolicy     *transport.AdminPolicy
}

func NewVoterController(voterStorage storage.VoterStorage, electionStorage storage.ElectionStorage, rules EligibilityRules, adminPolicy *transport.AdminPolicy) *VoterController {
	return &VoterController{
		voterStorage:    voterStorage,
		electionStorage: electionStorage,
		rules:           rules,
		adminPolicy:     adminPolicy,
	}
}

func (c *VoterController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/voters")
	admin := transport.AdminAuthMiddleware(c.adminPolicy)

	group.POST("", c.register)
	group.GET("", c.listOrLookup)
	group.GET("/:id", c.get)
	group.PUT("/:id/status", admin, c.setStatus)
	group.DELETE("/:id", admin, c.delete)
}

// register godoc
// @Summary Register a voter
// @Tags voters
// @Accept json
// @Produce json
// @Param registration body models.VoterRegisterRequest true "Voter registration"
// @Success 201 {object} storage.VoterRegistration
// @Failure 400 {object} models.ErrorResponse "Validation errors"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/voters [post]
func (c *VoterController) register(g *gin.Context) {
	var req models.VoterRegisterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	errs := req.Validate(time.Now().UTC())

	// Each duplicate check contributes its own message.
	ctx := g.Request.Context()
	if req.WalletAddress != "" {
		if _, err := c.voterStorage.GetByWallet(ctx, req.WalletAddress); err == nil {
			errs = append(errs, "Wallet address already registered")
		}
	}
	if req.NationalID != "" {
		if _, err := c.voterStorage.GetByNationalID(ctx, req.NationalID); err == nil {
			errs = append(errs, "National ID already registered")
		}
	}
	if req.Email != "" {
		if _, err := c.voterStorage.GetByEmail(ctx, req.Email); err == nil {
			errs = append(errs, "Email already registered")
		}
	}

	if len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	registration := &storage.VoterRegistration{
		ID:                 uuid.NewString(),
		WalletAddress:      req.WalletAddress,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		DateOfBirth:        req.DateOfBirth,
		NationalID:         req.NationalID,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		VerificationStatus: storage.VerificationPending,
		EligibleElections:  []string{},
		RegisteredAt:       time.Now().UTC(),
	}

	if err := c.voterStorage.Create(ctx, registration); err != nil {
		// The storage enforces uniqueness too, so concurrent registrations
		// cannot slip past the checks above.
		switch {
		case errors.Is(err, storage.ErrDuplicateWallet):
			g.JSON(http.StatusBadRequest, models.NewValidationErrors([]string{"Wallet address already registered"}))
		case errors.Is(err, storage.ErrDuplicateNationalID):
			g.JSON(http.StatusBadRequest, models.NewValidationErrors([]string{"National ID already registered"}))
		case errors.Is(err, storage.ErrDuplicateEmail):
			g.JSON(http.StatusBadRequest, models.NewValidationErrors([]string{"Email already registered"}))
		default:
			logging.Log.Errorf("VOTER: failed to store registration: %v", err)
			g.JSON(http.StatusInternalServerError, models.NewError("could not save voter registration"))
		}
		return
	}

	logging.Log.Infof("VOTER: registered %s for wallet %s", registration.ID, registration.WalletAddress)
	g.JSON(http.StatusCreated, registration)
}

// listOrLookup godoc
// @Security AdminToken
// @Summary List registrations or look one up by wallet
// @Description Without a wallet query parameter this is an admin-only list
// @Tags voters
// @Produce json
// @Param wallet query string false "Wallet address"
// @Success 200 {array} storage.VoterRegistration
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/voters [get]
func (c *VoterController) listOrLookup(g *gin.Context) {
	if wallet := g.Query("wallet"); wallet != "" {
		registration, err := c.voterStorage.GetByWallet(g.Request.Context(), wallet)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				g.JSON(http.StatusNotFound, models.NewError("no registration found for wallet"))
				return
			}
			logging.Log.Errorf("VOTER: lookup by wallet failed: %v", err)
			g.JSON(http.StatusInternalServerError, models.NewError("could not look up registration"))
			return
		}
		g.JSON(http.StatusOK, registration)
		return
	}

	// Full listing exposes personal data, admins only.
	if _, ok := c.adminPolicy.AdminWallet(g); !ok {
		g.JSON(http.StatusUnauthorized, models.NewError("unauthorized"))
		return
	}

	registrations, err := c.voterStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("VOTER: failed to list registrations: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list registrations"))
		return
	}
	g.JSON(http.StatusOK, registrations)
}

// get godoc
// @Summary Get a registration by id
// @Tags voters
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} storage.VoterRegistration
// @Failure 404 {object} models.ErrorResponse
// @Router /api/voters/{id} [get]
func (c *VoterController) get(g *gin.Context) {
	registration, err := c.voterStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("voter registration not found"))
			return
		}
		logging.Log.Errorf("VOTER: failed to load registration %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load registration"))
		return
	}
	g.JSON(http.StatusOK, registration)
}

// setStatus godoc
// @Security AdminToken
// @Summary Update verification status
// @Description Verifying recomputes the eligible elections for the voter
// @Tags voters
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param status body models.VoterStatusUpdateRequest true "New status"
// @Success 200 {object} storage.VoterRegistration
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/voters/{id}/status [put]
func (c *VoterController) setStatus(g *gin.Context) {
	var req models.VoterStatusUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	ctx := g.Request.Context()
	registration, err := c.voterStorage.Get(ctx, g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("voter registration not found"))
			return
		}
		logging.Log.Errorf("VOTER: failed to load registration %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load registration"))
		return
	}

	registration.VerificationStatus = storage.VerificationStatus(req.Status)
	registration.Notes = req.Notes
	registration.EligibleElections = []string{}

	if registration.VerificationStatus == storage.VerificationVerified {
		eligible, err := c.eligibleElections(g, registration.Address)
		if err != nil {
			logging.Log.Errorf("VOTER: failed to compute eligibility for %s: %v", registration.ID, err)
			g.JSON(http.StatusInternalServerError, models.NewError("could not compute eligible elections"))
			return
		}
		registration.EligibleElections = eligible
	}

	if err := c.voterStorage.Update(ctx, registration); err != nil {
		logging.Log.Errorf("VOTER: failed to update registration %s: %v", registration.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not update registration"))
		return
	}

	logging.Log.Infof("VOTER: registration %s set to %s with %d eligible elections",
		registration.ID, registration.VerificationStatus, len(registration.EligibleElections))
	g.JSON(http.StatusOK, registration)
}

func (c *VoterController) eligibleElections(g *gin.Context, address storage.Address) ([]string, error) {
	elections, err := c.electionStorage.List(g.Request.Context(), storage.ElectionFilter{})
	if err != nil {
		return nil, err
	}

	eligible := make([]string, 0)
	for _, election := range elections {
		if election.Status == storage.ElectionStatusCancelled {
			continue
		}
		if c.rules.allows(election.Type, address) {
			eligible = append(eligible, election.ID)
		}
	}
	return eligible, nil
}

// delete godoc
// @Security AdminToken
// @Summary Delete a voter registration
// @Tags voters
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/voters/{id} [delete]
func (c *VoterController) delete(g *gin.Context) {
	id := g.Param("id")
	if err := c.voterStorage.Delete(g.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("voter registration not found"))
			return
		}
		logging.Log.Errorf("VOTER: failed to delete registration %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not delete registration"))
		return
	}
	logging.Log.Infof("VOTER: deleted registration %s", id)
	g.JSON(http.StatusOK, &models.MessageResponse{Success: true, Message: "voter registration deleted"})
}
