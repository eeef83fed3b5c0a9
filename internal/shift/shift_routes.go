package shift

import (
	"github.com/gin-gonic/gin"

	"github.com/Lexio19/employee-hub/internal/access"
	"github.com/Lexio19/employee-hub/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, employees middleware.EmployeeLookup) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware(employees), middleware.RateLimitByUser(5, 10))
	{
		shifts.GET("", handler.ListOwnShifts)
		shifts.GET("/all", middleware.Authorize(access.ManagerOrAdmin), handler.ListAllShifts)
		shifts.POST("", middleware.Authorize(access.ManagerOrAdmin), handler.CreateShift)
	}

	swaps := r.Group("/swaps")
	swaps.Use(middleware.AuthMiddleware(employees), middleware.RateLimitByUser(5, 10))
	{
		swaps.GET("", handler.ListOwnSwaps)
		swaps.GET("/available", handler.ListAvailableSwaps)
		swaps.POST("", handler.CreateSwap)
		swaps.PUT("/:id/accept", handler.AcceptSwap)
		swaps.PUT("/:id/reject", handler.RejectSwap)
		swaps.PUT("/:id/cancel", handler.CancelSwap)
	}
}
