package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CandidateController struct {
	candidateStorage storage.CandidateStorage
}

func NewCandidateController(candidateStorage storage.CandidateStorage) *CandidateController {
	return &CandidateController{candidateStorage: candidateStorage}
}

func (c *CandidateController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/candidates")

	group.GET("", c.list)
	group.POST("", c.create)
	group.GET("/:id", c.get)
	group.PUT("/:id", c.update)
	group.DELETE("/:id", c.delete)
}

// requesterWallet is the acting wallet supplied by the client-side wallet
// connector.
func requesterWallet(g *gin.Context) string {
	return strings.TrimSpace(g.GetHeader("x-wallet-address"))
}

// create godoc
// @Summary Register a candidacy
// @Tags candidates
// @Accept json
// @Produce json
// @Param candidate body models.CandidateCreateRequest true "Candidate registration"
// @Success 201 {object} storage.Candidate
// @Failure 400 {object} models.ErrorResponse "Validation errors"
// @Failure 409 {object} models.ErrorResponse "Wallet already has a candidacy"
// @Router /api/candidates [post]
func (c *CandidateController) create(g *gin.Context) {
	var req models.CandidateCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	ctx := g.Request.Context()
	if _, err := c.candidateStorage.GetByWallet(ctx, req.WalletAddress); err == nil {
		g.JSON(http.StatusConflict, models.NewError("Wallet address already has a registered candidacy"))
		return
	}

	candidate := &storage.Candidate{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Party:            req.Party,
		Position:         req.Position,
		Bio:              req.Bio,
		Experience:       req.Experience,
		Platform:         req.Platform,
		WalletAddress:    req.WalletAddress,
		Verified:         false,
		RegistrationDate: time.Now().UTC(),
		ElectionID:       req.ElectionID,
	}

	if err := c.candidateStorage.Create(ctx, candidate); err != nil {
		if errors.Is(err, storage.ErrDuplicateWallet) {
			g.JSON(http.StatusConflict, models.NewError("Wallet address already has a registered candidacy"))
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to store candidate: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not save candidate"))
		return
	}

	logging.Log.Infof("CANDIDATE: registered %s for wallet %s", candidate.ID, candidate.WalletAddress)
	g.JSON(http.StatusCreated, candidate)
}

// list godoc
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Param electionId query string false "Election filter"
// @Param party query string false "Party filter"
// @Param position query string false "Position filter"
// @Param verified query bool false "Verified filter"
// @Success 200 {array} storage.Candidate
// @Failure 500 {object} models.ErrorResponse
// @Router /api/candidates [get]
func (c *CandidateController) list(g *gin.Context) {
	filter := storage.CandidateFilter{
		ElectionID: g.Query("electionId"),
		Party:      g.Query("party"),
		Position:   g.Query("position"),
	}
	if raw := g.Query("verified"); raw != "" {
		verified := raw == "true"
		filter.Verified = &verified
	}

	candidates, err := c.candidateStorage.List(g.Request.Context(), filter)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to list candidates: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list candidates"))
		return
	}
	g.JSON(http.StatusOK, candidates)
}

// get godoc
// @Summary Get a candidate by id
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} models.ErrorResponse
// @Router /api/candidates/{id} [get]
func (c *CandidateController) get(g *gin.Context) {
	candidate, err := c.candidateStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("candidate not found"))
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to load candidate %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load candidate"))
		return
	}
	g.JSON(http.StatusOK, candidate)
}

// update godoc
// @Summary Update a candidacy
// @Description Only the owning wallet may update; identity fields are immutable
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "Candidate id"
// @Param patch body models.CandidateUpdateRequest true "Fields to update"
// @Success 200 {object} storage.Candidate
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/candidates/{id} [put]
func (c *CandidateController) update(g *gin.Context) {
	var req models.CandidateUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	ctx := g.Request.Context()
	candidate, err := c.candidateStorage.Get(ctx, g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("candidate not found"))
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to load candidate %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load candidate"))
		return
	}

	if !strings.EqualFold(requesterWallet(g), candidate.WalletAddress) {
		g.JSON(http.StatusForbidden, models.NewError("only the owning wallet may update this candidacy"))
		return
	}

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Party != nil {
		candidate.Party = *req.Party
	}
	if req.Position != nil {
		candidate.Position = *req.Position
	}
	if req.Bio != nil {
		candidate.Bio = *req.Bio
	}
	if req.Experience != nil {
		candidate.Experience = *req.Experience
	}
	if req.Platform != nil {
		candidate.Platform = *req.Platform
	}

	if err := c.candidateStorage.Update(ctx, candidate); err != nil {
		logging.Log.Errorf("CANDIDATE: failed to update candidate %s: %v", candidate.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not update candidate"))
		return
	}
	g.JSON(http.StatusOK, candidate)
}

// delete godoc
// @Summary Withdraw a candidacy
// @Description Only the owning wallet may delete
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/candidates/{id} [delete]
func (c *CandidateController) delete(g *gin.Context) {
	ctx := g.Request.Context()
	candidate, err := c.candidateStorage.Get(ctx, g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("candidate not found"))
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to load candidate %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load candidate"))
		return
	}

	if !strings.EqualFold(requesterWallet(g), candidate.WalletAddress) {
		g.JSON(http.StatusForbidden, models.NewError("only the owning wallet may delete this candidacy"))
		return
	}

	if err := c.candidateStorage.Delete(ctx, candidate.ID); err != nil {
		logging.Log.Errorf("CANDIDATE: failed to delete candidate %s: %v", candidate.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not delete candidate"))
		return
	}
	logging.Log.Infof("CANDIDATE: deleted candidate %s", candidate.ID)
	g.JSON(http.StatusOK, &models.MessageResponse{Success: true, Message: "candidacy withdrawn"})
}
