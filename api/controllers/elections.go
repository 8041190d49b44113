package controllers

import (
	"errors"
	"net/http"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/Sanenelisiwe1975/Baxela/storage"
	"github.com/gin-gonic/gin"
)

type ElectionController struct {
	electionStorage storage.ElectionStorage
}

func NewElectionController(electionStorage storage.ElectionStorage) *ElectionController {
	return &ElectionController{electionStorage: electionStorage}
}

func (c *ElectionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/elections")

	group.GET("", c.list)
	group.GET("/:id", c.get)
}

// list godoc
// @Summary List elections
// @Tags elections
// @Produce json
// @Param type query string false "Election type filter"
// @Param status query string false "Status filter"
// @Success 200 {array} storage.Election
// @Failure 500 {object} models.ErrorResponse
// @Router /api/elections [get]
func (c *ElectionController) list(g *gin.Context) {
	filter := storage.ElectionFilter{
		Type:   g.Query("type"),
		Status: g.Query("status"),
	}

	elections, err := c.electionStorage.List(g.Request.Context(), filter)
	if err != nil {
		logging.Log.Errorf("ELECTION: failed to list elections: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not list elections"))
		return
	}
	g.JSON(http.StatusOK, elections)
}

// get godoc
// @Summary Get an election by id
// @Tags elections
// @Produce json
// @Param id path string true "Election id"
// @Success 200 {object} storage.Election
// @Failure 404 {object} models.ErrorResponse
// @Router /api/elections/{id} [get]
func (c *ElectionController) get(g *gin.Context) {
	election, err := c.electionStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, models.NewError("election not found"))
			return
		}
		logging.Log.Errorf("ELECTION: failed to load election %s: %v", g.Param("id"), err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not load election"))
		return
	}
	g.JSON(http.StatusOK, election)
}
