package server

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint, which echoes the identity the
// auth gate decoded from the bearer credential.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	response := gin.H{
		"userId": middleware.UserIDFromContext(c),
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		response["email"] = email
	}
	respond.OK(c, response)
}
