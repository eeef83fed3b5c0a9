package vacation

import (
	"github.com/gin-gonic/gin"

	"github.com/Lexio19/employee-hub/internal/access"
	"github.com/Lexio19/employee-hub/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, employees middleware.EmployeeLookup) {
	vacations := r.Group("/vacations")
	vacations.Use(middleware.AuthMiddleware(employees), middleware.RateLimitByUser(5, 10))
	{
		vacations.GET("", handler.ListOwn)
		vacations.POST("", handler.Create)
		vacations.DELETE("/:id", handler.Delete)

		vacations.GET("/pending", middleware.Authorize(access.ManagerOrAdmin), handler.ListPending)
		vacations.PUT("/:id/status", middleware.Authorize(access.ManagerOrAdmin), handler.SetStatus)
	}
}
