package payslip

import (
	"github.com/gin-gonic/gin"

	"github.com/Lexio19/employee-hub/internal/access"
	"github.com/Lexio19/employee-hub/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, employees middleware.EmployeeLookup) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware(employees), middleware.RateLimitByUser(5, 10))
	{
		payslips.GET("", handler.ListOwn)
		payslips.GET("/:id", handler.GetByID)
		payslips.GET("/:id/download", handler.Download)

		payslips.POST("", middleware.Authorize(access.AdminOnly), handler.Create)
	}
}
