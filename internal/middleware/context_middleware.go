package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lexio19/employee-hub/internal/shared/contextutil"
)

// ContextLogger decorates the request context with a zap logger carrying the
// request id and the authenticated employee, so services can log without
// knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = uuid.New().String()
			ctx = contextutil.WithRequestID(ctx, rid)
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("employee_id", c.GetString("employee_id")),
		)

		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
