package middleware

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	autherrors "github.com/Lexio19/employee-hub/internal/auth/errors"
	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/shared/apperror"
	"github.com/Lexio19/employee-hub/internal/shared/response"
)

// EmployeeLookup is the slice of the employee repository the gate needs to
// resolve a token subject to a live identity.
type EmployeeLookup interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// AuthMiddleware is the identity half of the access-control gate: the bearer
// token must verify and its subject must still exist in the identity store.
// Both failures are authentication errors (401), never authorization (403).
// The role set on the context comes from the live record, not the claim, so
// role changes take effect without re-login.
func AuthMiddleware(employees EmployeeLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			writeAuthError(c, autherrors.ErrMissingToken)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			writeAuthError(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeAuthError(c, autherrors.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			writeAuthError(c, autherrors.ErrInvalidToken)
			return
		}

		empl, err := employees.FindByID(c.Request.Context(), employeeID)
		if err != nil {
			writeAuthError(c, autherrors.ErrEmployeeNotFound)
			return
		}

		c.Set("employee_id", empl.ID.String())
		c.Set("role", empl.Role)

		c.Next()
	}
}

func writeAuthError(c *gin.Context, errObj *apperror.AppError) {
	response.Error(c, errObj.HTTPStatus, errObj.Message)
	c.Abort()
}
