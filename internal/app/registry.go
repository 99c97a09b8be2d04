package app

import (
	"database/sql"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/salary"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	loc := cfg.Location()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salaryRepo := salary.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcerFromString(infra.RoleModel)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	employeeService := employee.NewService(db, employeeRepo, authRepo, counterRepo, outboxRepo, rdb)
	salaryService := salary.NewService(db, salaryRepo, employeeRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, leaveService,
		attendance.WithLocation(loc),
	)
	payrollService := payroll.NewService(employeeRepo, salaryRepo, leaveRepo,
		payroll.WithLocation(loc),
		payroll.WithHistoryMax(cfg.PayslipHistoryMax),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService)
	rbacHandler := rbac.NewHandler(rbacService)
	salaryHandler := salary.NewHandler(salaryService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, cfg.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret)
		salary.RegisterRoutes(api, salaryHandler, rbacService, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, cfg.JWTSecret)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return nil
}
