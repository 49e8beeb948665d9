package gateway

import (
	"net/http"

	"github.com/example/adoreshop/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (g *Gateway) navigate(c *gin.Context) {
	dest, err := session.ParseDestination(c.Param("destination"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_destination", "message": err.Error()})
		return
	}
	user, err := gate(c).CurrentUser(c.Request.Context())
	if err != nil {
		g.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requested":   dest,
		"destination": session.Route(dest, user),
	})
}

func (g *Gateway) currentUser(c *gin.Context) {
	user, err := gate(c).CurrentUser(c.Request.Context())
	if err != nil {
		g.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) login(c *gin.Context) {
	var creds session.Credentials
	if err := BindAndValidate(c, &creds, g.validate); err != nil {
		return
	}
	user, err := gate(c).Login(c.Request.Context(), creds)
	if err != nil {
		g.writeError(c, err, nil)
		return
	}
	g.logger.Info("User logged in", zap.String("client_id", clientID(c)), zap.String("username", user.Username))
	c.JSON(http.StatusOK, user)
}

// logout forgets the session and ends the client's storefront.
func (g *Gateway) logout(c *gin.Context) {
	if err := gate(c).Logout(c.Request.Context()); err != nil {
		g.writeError(c, err, nil)
		return
	}
	g.storefronts.Remove(clientID(c))
	g.logger.Info("User logged out", zap.String("client_id", clientID(c)))
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

func (g *Gateway) updateProfile(c *gin.Context) {
	var upd session.ProfileUpdate
	if err := BindAndValidate(c, &upd, g.validate); err != nil {
		return
	}
	user, err := gate(c).UpdateProfile(c.Request.Context(), upd)
	if err != nil {
		g.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, user)
}
