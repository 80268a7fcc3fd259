package middleware

import (
	"net/http"

	"github.com/agency/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// RequireRole aborts with 403 unless the authenticated user has the given
// role. Admins pass every role check.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := identity.Role(GetJWTRole(c))
		if current == identity.RoleAdmin || current == role {
			c.Next()
			return
		}
		abortForbidden(c, "ERR_FORBIDDEN", "This action requires the "+string(role)+" role")
	}
}

// RequirePlan aborts with 403 unless the agency's plan covers the required
// one. Financial reports sit behind the pro plan.
func RequirePlan(required identity.Plan) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := identity.Plan(GetJWTPlan(c))
		if current.Allows(required) {
			c.Next()
			return
		}
		abortForbidden(c, "ERR_PLAN_REQUIRED", "Current subscription plan does not include this feature")
	}
}

func abortForbidden(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
