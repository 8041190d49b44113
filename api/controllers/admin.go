package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
)

// Allowed election status transitions. Completed elections are terminal,
// cancelled ones can be reopened as drafts.
var allowedTransitions = map[storage.ElectionStatus]map[storage.ElectionStatus]bool{
	storage.ElectionStatusDraft: {
		storage.ElectionStatusActive:    true,
		storage.ElectionStatusCancelled: true,
	},
	storage.ElectionStatusActive: {
		storage.ElectionStatusCompleted: true,
		storage.ElectionStatusCancelled: true,
	},
	storage.ElectionStatusCompleted: {},
	storage.ElectionStatusCancelled: {
		storage.ElectionStatusDraft: true,
	},
}

type AdminController struct {
	electionStorage  storage.ElectionStorage
	candidateStorage storage.CandidateStorage
	voteStorage      storage.VoteStorage
	adminPolicy      *transport.AdminPolicy
}

func NewAdminController(electionStorage storage.ElectionStorage, candidateStorage storage.CandidateStorage, voteStorage storage.VoteStorage, adminPolicy *transport.AdminPolicy) *AdminController {
	return &AdminController{
		electionStorage:  electionStorage,
		candidateStorage: candidateStorage,
		voteStorage:      voteStorage,
		adminPolicy:      adminPolicy,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware(c.adminPolicy))

	group.POST("/elections", c.createElection)
	group.PUT("/elections/:id/status", c.setElectionStatus)
	group.POST("/candidates/:id/verify", c.verifyCandidate)
	group.GET("/votes", c.listVotes)
}

// createElection godoc
// @Security AdminToken
// @Summary Create an election
// @Tags admin
// @Accept json
// @Produce json
// @Param election body models.ElectionCreateRequest true "Election definition"
// @Success 201 {object} storage.Election
// @Failure 400 {object} models.ErrorResponse "Validation errors"
// @Failure 401 {object} models.ErrorResponse
// @Router /api/admin/elections [post]
func (c *AdminController) createElection(g *gin.Context) {
	var req models.ElectionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	start, end, errs := req.Validate()

	ctx := g.Request.Context()
	if req.Title != "" {
		if _, err := c.electionStorage.GetByTitle(ctx, req.Title); err == nil {
			errs = append(errs, "An election with this title already exists")
		}
	}

	if len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	election := &storage.Election{
		ID:             models.BuildElectionID(req.Title, req.Type, start),
		Title:          req.Title,
		Description:    req.Description,
		Type:           storage.ElectionType(req.Type),
		StartDate:      start,
		EndDate:        end,
		Status:         storage.ElectionStatusDraft,
		Positions:      req.Positions,
		EligibleVoters: req.EligibleVoters,
		CreatedBy:      g.GetString("adminWallet"),
		CreatedAt:      time.Now().UTC(),
	}

	if err := c.electionStorage.Create(ctx, election); err != nil {
		if errors.Is(err, storage.ErrDuplicateTitle) {
			g.JSON(http.StatusBadRequest, models.NewValidationErrors([]string{"An election with this title already exists"}))
			return
		}
		logging.Log.Errorf("ADMIN: failed to store election: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not save election"))
		return
	}

	logging.Log.Infof("ADMIN: created election %s by %s", election.ID, election.CreatedBy)
	g.JSON(http.StatusCreated, election)
}

// setElectionStatus godoc
// @Security AdminToken
// @Summary Transition an election's status
// @Description Enforces the transition table; activation requires the current time to fall inside the election window
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Election id"
// @Param status body models.ElectionStatusUpdateRequest true "Target status"
// @Success 200 {object} storage.Election
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Transition not allowed"
// @Router /api/admin/elections/{id}/status [put]
func (c *AdminController) setElectionStatus(g *gin.Context) {
	var req models.ElectionStatusUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	target := storage.ElectionStatus(req.Status)
	if _, known := allowedTransitions[target]; !known {
		g.JSON(http.StatusBadRequest, models.NewError("invalid election status"))
		return
	}

	ctx := g.Request.Context()
	election, err := c.electionStorage.Get(ctx, g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("election not found"))
			return
		}
		logging.Log.Errorf("ADMIN: failed to load election %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load election"))
		return
	}

	if !allowedTransitions[election.Status][target] {
		g.JSON(http.StatusConflict, models.NewError(
			"cannot transition election from "+string(election.Status)+" to "+string(target)))
		return
	}

	if target == storage.ElectionStatusActive {
		now := time.Now().UTC()
		if now.Before(election.StartDate) || now.After(election.EndDate) {
			g.JSON(http.StatusConflict, models.NewError("election can only be activated during its scheduled window"))
			return
		}
	}

	election.Status = target
	if err := c.electionStorage.Update(ctx, election); err != nil {
		logging.Log.Errorf("ADMIN: failed to update election %s: %v", election.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not update election"))
		return
	}

	logging.Log.Infof("ADMIN: election %s transitioned to %s", election.ID, election.Status)
	g.JSON(http.StatusOK, election)
}

// verifyCandidate godoc
// @Security AdminToken
// @Summary Verify a candidate
// @Description Re-verifying an already-verified candidate is an error
// @Tags admin
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Already verified"
// @Router /api/admin/candidates/{id}/verify [post]
func (c *AdminController) verifyCandidate(g *gin.Context) {
	ctx := g.Request.Context()
	candidate, err := c.candidateStorage.Get(ctx, g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("candidate not found"))
			return
		}
		logging.Log.Errorf("ADMIN: failed to load candidate %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load candidate"))
		return
	}

	if candidate.Verified {
		g.JSON(http.StatusConflict, models.NewError("Candidate is already verified"))
		return
	}

	candidate.Verified = true
	if err := c.candidateStorage.Update(ctx, candidate); err != nil {
		logging.Log.Errorf("ADMIN: failed to verify candidate %s: %v", candidate.ID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not verify candidate"))
		return
	}

	logging.Log.Infof("ADMIN: verified candidate %s", candidate.ID)
	g.JSON(http.StatusOK, candidate)
}

// listVotes godoc
// @Security AdminToken
// @Summary Audit listing of every recorded vote
// @Tags admin
// @Produce json
// @Success 200 {object} models.VoteListResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/admin/votes [get]
func (c *AdminController) listVotes(g *gin.Context) {
	votes, err := c.voteStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list votes: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list votes"))
		return
	}
	g.JSON(http.StatusOK, &models.VoteListResponse{Success: true, Votes: votes})
}
