package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/repository"
	"github.com/example/adoreshop/pkg/session"
	"github.com/example/adoreshop/pkg/studio"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Storefronts routes a client's request to its storefront actor.
type Storefronts interface {
	Request(clientID string, msg interface{}) (*studio.Reply, error)
	Remove(clientID string)
}

// Journal reads back the events recorded for a client.
type Journal interface {
	GetAuditLogs(ctx context.Context, clientID string, limit int64) ([]*repository.AuditLog, error)
}

type Gateway struct {
	config      *config.Config
	store       session.Store
	storefronts Storefronts
	journal     Journal
	logger      *zap.Logger
	router      *gin.Engine
	validate    *validatorv10.Validate
	server      *http.Server
}

func NewGateway(cfg *config.Config, logger *zap.Logger, store session.Store, storefronts Storefronts) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	g := &Gateway{
		config:      cfg,
		store:       store,
		storefronts: storefronts,
		logger:      logger,
		router:      router,
		validate:    newValidator(),
	}
	g.SetupRoutes()
	g.server = &http.Server{
		Addr:              cfg.Gateway.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return g
}

// UseJournal enables the cart history route. Call it before Start.
func (g *Gateway) UseJournal(j Journal) {
	g.journal = j
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := g.router.Group("/api/v1")
	if g.config.Gateway.RateLimit > 0 {
		v1.Use(rateLimitMiddleware(g.config.Gateway.RateLimit, g.config.Gateway.RateBurst))
	}
	v1.Use(g.clientMiddleware())
	{
		v1.GET("/nav/:destination", g.navigate)

		sess := v1.Group("/session")
		{
			sess.GET("", g.currentUser)
			sess.POST("/login", g.login)
			sess.POST("/logout", g.requireLogin(), g.logout)
			sess.PUT("/profile", g.requireLogin(), g.updateProfile)
		}

		app := v1.Group("")
		app.Use(g.requireLogin())
		{
			app.GET("/catalog", g.catalog)

			st := app.Group("/studio")
			{
				st.POST("", g.openStudio)
				st.GET("", g.getStudio)
				st.DELETE("", g.closeStudio)
				st.PUT("/product", g.selectProduct)
				st.PUT("/color", g.selectColor)
				st.POST("/elements", g.addElement)
				st.DELETE("/elements", g.clearDesign)
				st.DELETE("/elements/:id", g.removeElement)
				st.POST("/drag", g.beginDrag)
				st.PUT("/drag", g.updateDrag)
				st.DELETE("/drag", g.endDrag)
				st.POST("/advice", g.requestAdvice)
				st.POST("/cart", g.addDesignToCart)
			}

			cart := app.Group("/cart")
			{
				cart.GET("", g.getOrder)
				cart.GET("/history", g.cartHistory)
				cart.POST("/open", g.openCart)
				cart.POST("/close", g.closeCart)
				cart.POST("/quick/:entry", g.quickAdd)
				cart.DELETE("/items/:id", g.removeCartItem)
			}

			co := app.Group("/checkout")
			{
				co.GET("", g.getOrder)
				co.POST("", g.submitCart)
				co.PUT("/details", g.submitDetails)
				co.POST("/payment", g.confirmPayment)
				co.POST("/cancel", g.cancelCheckout)
				co.POST("/acknowledge", g.acknowledge)
			}
		}
	}
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

// Start blocks serving HTTP until Shutdown is called.
func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.server.Addr))
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("client_id", c.GetString(clientIDKey)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
