package controllers

import (
	"net/http"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/api/models"
	"github.com/Sanenelisiwe1975/Baxela/api/transport"
	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLifetime = 12 * time.Hour

type AuthController struct {
	adminPolicy *transport.AdminPolicy
}

func NewAuthController(adminPolicy *transport.AdminPolicy) *AuthController {
	return &AuthController{adminPolicy: adminPolicy}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/auth/token", c.issueToken)
}

type tokenRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type tokenResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// issueToken godoc
// @Summary Issue an admin session token
// @Description Wallets on the configured admin allow-list get a signed bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body tokenRequest true "Admin wallet"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/token [post]
func (c *AuthController) issueToken(g *gin.Context) {
	var req tokenRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, models.NewError("invalid request format"))
		return
	}

	if !c.adminPolicy.IsAdmin(req.WalletAddress) {
		logging.Log.Warnf("AUTH: token request from non-admin wallet %s", req.WalletAddress)
		g.JSON(http.StatusUnauthorized, models.NewError("wallet is not an administrator"))
		return
	}

	expiresAt := time.Now().Add(tokenLifetime)
	claims := jwt.RegisteredClaims{
		Subject:   req.WalletAddress,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.adminPolicy.JWTSecret)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to sign token: %v", err)
		g.JSON(http.StatusInternalServerError, models.NewError("could not issue token"))
		return
	}

	g.JSON(http.StatusOK, &tokenResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	})
}
