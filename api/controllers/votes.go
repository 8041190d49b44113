package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/chain"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoteController struct {
	voteStorage      storage.VoteStorage
	electionStorage  storage.ElectionStorage
	candidateStorage storage.CandidateStorage
	payments         chain.Payments
}

func NewVoteController(voteStorage storage.VoteStorage, electionStorage storage.ElectionStorage, candidateStorage storage.CandidateStorage, payments chain.Payments) *VoteController {
	return &VoteController{
		voteStorage:      voteStorage,
		electionStorage:  electionStorage,
		candidateStorage: candidateStorage,
		payments:         payments,
	}
}

func (c *VoteController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/votes")

	group.GET("", c.listByAddress)
	group.POST("", c.cast)
}

// cast godoc
// @Summary Cast a vote
// @Description One vote per wallet per election; the election must be active and inside its window
// @Tags votes
// @Accept json
// @Produce json
// @Param vote body models.VoteCastRequest true "Vote"
// @Success 201 {object} models.VoteCastResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Already voted"
// @Router /api/votes [post]
func (c *VoteController) cast(g *gin.Context) {
	var req models.VoteCastRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		g.JSON(http.StatusBadRequest, models.NewValidationErrors(errs))
		return
	}

	ctx := g.Request.Context()
	election, err := c.electionStorage.Get(ctx, req.ElectionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("election not found"))
			return
		}
		logging.Log.Errorf("VOTE: failed to load election %s: %v", req.ElectionID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load election"))
		return
	}
	if election.Status != storage.ElectionStatusActive {
		g.JSON(http.StatusConflict, models.NewError("election is not active"))
		return
	}
	now := time.Now().UTC()
	if now.Before(election.StartDate) || now.After(election.EndDate) {
		g.JSON(http.StatusConflict, models.NewError("election is outside its voting window"))
		return
	}

	candidate, err := c.candidateStorage.Get(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("candidate not found"))
			return
		}
		logging.Log.Errorf("VOTE: failed to load candidate %s: %v", req.CandidateID, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load candidate"))
		return
	}
	if candidate.ElectionID != election.ID {
		g.JSON(http.StatusBadRequest, models.NewError("candidate is not running in this election"))
		return
	}
	if !candidate.Verified {
		g.JSON(http.StatusBadRequest, models.NewError("candidate is not verified"))
		return
	}

	if _, err := c.voteStorage.GetByVoterAndElection(ctx, req.VoterAddress, req.ElectionID); err == nil {
		g.JSON(http.StatusConflict, models.NewError("already voted in this election"))
		return
	}

	transactionHash, err := c.payments.SubmitPayment(ctx, req.VoterAddress, 0)
	if err != nil {
		logging.Log.Errorf("VOTE: payment submission failed for %s: %v", req.VoterAddress, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not submit vote transaction"))
		return
	}

	vote := &storage.Vote{
		ID:              uuid.NewString(),
		ElectionID:      req.ElectionID,
		CandidateID:     req.CandidateID,
		VoterAddress:    req.VoterAddress,
		Timestamp:       now,
		TransactionHash: transactionHash,
		Verified:        true,
	}

	if err := c.voteStorage.Create(ctx, vote); err != nil {
		if errors.Is(err, storage.ErrDuplicateVote) {
			g.JSON(http.StatusConflict, models.NewError("already voted in this election"))
			return
		}
		logging.Log.Errorf("VOTE: failed to store vote: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not save vote"))
		return
	}

	election.TotalVotes++
	if err := c.electionStorage.Update(ctx, election); err != nil {
		logging.Log.Errorf("VOTE: failed to bump vote count for election %s: %v", election.ID, err)
	}

	logging.Log.Infof("VOTE: recorded vote %s in election %s", vote.ID, vote.ElectionID)
	g.JSON(http.StatusCreated, &models.VoteCastResponse{Success: true, Vote: vote})
}

// listByAddress godoc
// @Summary List votes by wallet address
// @Tags votes
// @Produce json
// @Param address query string true "Voter wallet address"
// @Success 200 {object} models.VoteListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/votes [get]
func (c *VoteController) listByAddress(g *gin.Context) {
	address := g.Query("address")
	if address == "" {
		g.JSON(http.StatusBadRequest, models.NewError("address is required"))
		return
	}

	votes, err := c.voteStorage.ListByAddress(g.Request.Context(), address)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to list votes for %s: %v", address, err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list votes"))
		return
	}
	g.JSON(http.StatusOK, &models.VoteListResponse{Success: true, Votes: votes})
}
