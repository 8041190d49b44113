package controllers

import (
	"errors"
	"net/http"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/ipfs"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/gin-gonic/gin"
)

type IPFSController struct {
	pinner *ipfs.Client
}

func NewIPFSController(pinner *ipfs.Client) *IPFSController {
	return &IPFSController{pinner: pinner}
}

func (c *IPFSController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/ipfs/test", c.testConnectivity)
	engine.POST("/api/ipfs/test", c.testConnectivity)
}

// testConnectivity godoc
// @Summary Probe the pinning provider
// @Description Lightweight authentication check against the configured provider
// @Tags ipfs
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse "Provider not configured"
// @Failure 502 {object} models.ErrorResponse "Provider rejected the probe"
// @Router /api/ipfs/test [get]
func (c *IPFSController) testConnectivity(g *gin.Context) {
	if err := c.pinner.TestConnectivity(g.Request.Context()); err != nil {
		if errors.Is(err, ipfs.ErrNotConfigured) {
			g.JSON(http.StatusInternalServerError, models.NewError(err.Error()))
			return
		}
		logging.Log.Errorf("IPFS: connectivity probe failed: %v", err)
		g.JSON(http.StatusBadGateway, models.NewError(err.Error()))
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Success: true, Message: "pinning provider reachable"})
}
