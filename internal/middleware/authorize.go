package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Lexio19/employee-hub/internal/access"
	autherrors "github.com/Lexio19/employee-hub/internal/auth/errors"
)

// Authorize is the role half of the access-control gate. It runs after
// AuthMiddleware and evaluates the resolved role against the operation's
// declared access level. Failure here is 403, distinct from the 401s the
// identity half produces.
func Authorize(level access.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !access.ValidRole(role) {
			writeAuthError(c, autherrors.ErrForbidden)
			return
		}

		if !level.Allows(role) {
			writeAuthError(c, autherrors.ErrForbidden)
			return
		}

		c.Next()
	}
}
