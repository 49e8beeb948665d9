package gateway

import (
	"net/http"

	"github.com/example/adoreshop/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ClientIDHeader = "X-Client-ID"

	clientIDKey = "client_id"
	gateKey     = "gate"
	userKey     = "user"
)

// rateLimitMiddleware sheds load once the shared token bucket is empty.
func rateLimitMiddleware(limit float64, burst int) gin.HandlerFunc {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}
		c.Next()
	}
}

// clientMiddleware resolves the browser client and its session gate.
func (g *Gateway) clientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ClientIDHeader)
		if err := g.validate.Var(id, "required,max=64,uuid|alphanum"); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid_client_id",
				"msg":   ClientIDHeader + " must be a uuid or alphanumeric token",
			})
			return
		}
		c.Set(clientIDKey, id)
		c.Set(gateKey, session.NewGate(g.store, id))
		c.Next()
	}
}

// requireLogin rejects anonymous clients with a redirect to the login page.
func (g *Gateway) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := gate(c).CurrentUser(c.Request.Context())
		if err != nil {
			g.logger.Error("Failed to load session", zap.String("client_id", clientID(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal"})
			return
		}
		if !user.IsLoggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "login_required",
				"redirect": "/login",
			})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func clientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}

func gate(c *gin.Context) *session.Gate {
	return c.MustGet(gateKey).(*session.Gate)
}

func currentUser(c *gin.Context) session.UserSession {
	return c.MustGet(userKey).(session.UserSession)
}
