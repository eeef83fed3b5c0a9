package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Lexio19/employee-hub/internal/auth"
	"github.com/Lexio19/employee-hub/internal/employee"
	"github.com/Lexio19/employee-hub/internal/messaging/kafka"
	"github.com/Lexio19/employee-hub/internal/payslip"
	"github.com/Lexio19/employee-hub/internal/shift"
	"github.com/Lexio19/employee-hub/internal/vacation"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)
	shiftRepo := shift.NewShiftRepository(gormDB)
	swapRepo := shift.NewSwapRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	vacationService := vacation.NewService(db, vacationRepo, employeeRepo, outboxRepo)
	shiftService := shift.NewService(db, shiftRepo, swapRepo, employeeRepo, outboxRepo)
	payslipService := payslip.NewService(payslipRepo, employeeRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	vacationHandler := vacation.NewHandler(vacationService)
	shiftHandler := shift.NewHandler(shiftService)
	payslipHandler := payslip.NewHandler(payslipService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, employeeRepo)
		vacation.RegisterRoutes(api, vacationHandler, employeeRepo)
		shift.RegisterRoutes(api, shiftHandler, employeeRepo)
		payslip.RegisterRoutes(api, payslipHandler, employeeRepo)
	}

	return nil
}
