package handler

import (
	"github.com/agency/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// setJWTContext injects the context values the JWT middleware would set.
func setJWTContext(c *gin.Context, agencyID, userID uuid.UUID) {
	c.Set(middleware.JWTAgencyIDKey, agencyID.String())
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTRoleKey, "admin")
	c.Set(middleware.JWTPlanKey, "pro")
}

// setupTestRouter builds a gin engine with an authenticated test agency.
func setupTestRouter(agencyID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, agencyID, uuid.New())
		c.Next()
	})
	return router
}
