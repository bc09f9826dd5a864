package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibap-dev/storm/internal/shared/server/middleware"
	"github.com/sibap-dev/storm/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"userId":  middleware.UserIDFromContext(c),
		"isGuest": middleware.IsGuest(c),
	})
}
