package transport

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(ginMode string) *gin.Engine {
	gin.SetMode(ginMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "x-admin-wallet", "x-wallet-address"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Bypass swagger for non-local
	if os.Getenv("APP_ENV") == "local" {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.NoRoute(NoRouteHandler())

	return engine
}

func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Log.Infof("No routed request received for:%s", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "page not found"})
	}
}

// AdminPolicy is the set of principals allowed to call admin endpoints,
// injected at startup instead of compiled into handlers.
type AdminPolicy struct {
	Wallets   map[string]bool
	JWTSecret []byte
}

func NewAdminPolicy(wallets []string, jwtSecret string) *AdminPolicy {
	allowed := make(map[string]bool, len(wallets))
	for _, wallet := range wallets {
		allowed[strings.ToLower(strings.TrimSpace(wallet))] = true
	}
	return &AdminPolicy{Wallets: allowed, JWTSecret: []byte(jwtSecret)}
}

func (p *AdminPolicy) IsAdmin(wallet string) bool {
	return p.Wallets[strings.ToLower(strings.TrimSpace(wallet))]
}

// AdminWallet extracts the acting admin wallet from either a bearer token
// issued by the auth endpoint or the x-admin-wallet header. Returns the
// wallet and whether it is authorized.
func (p *AdminPolicy) AdminWallet(c *gin.Context) (string, bool) {
	authorization := c.GetHeader("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		raw := strings.TrimPrefix(authorization, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return p.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return "", false
		}
		subject, err := token.Claims.GetSubject()
		if err != nil || !p.IsAdmin(subject) {
			return "", false
		}
		return strings.ToLower(subject), true
	}

	wallet := c.GetHeader("x-admin-wallet")
	if wallet != "" && p.IsAdmin(wallet) {
		return strings.ToLower(wallet), true
	}
	return "", false
}

func AdminAuthMiddleware(policy *AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet, ok := policy.AdminWallet(c)
		if !ok {
			logging.Log.Warnf("ADMIN: Unauthorized access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		c.Set("adminWallet", wallet)
		c.Next()
	}
}
