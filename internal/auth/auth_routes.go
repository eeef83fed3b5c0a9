package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Lexio19/employee-hub/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, employees middleware.EmployeeLookup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(employees), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
