package app

import (
	"github.com/towet/payroll-processing-sys/internal/attendance"
	"github.com/towet/payroll-processing-sys/internal/auth"
	"github.com/towet/payroll-processing-sys/internal/auth/token"
	"github.com/towet/payroll-processing-sys/internal/dashboard"
	"github.com/towet/payroll-processing-sys/internal/employee"
	"github.com/towet/payroll-processing-sys/internal/leave"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/middleware"
	"github.com/towet/payroll-processing-sys/internal/payroll"
	"github.com/towet/payroll-processing-sys/internal/payslip"
	"github.com/towet/payroll-processing-sys/internal/rbac"
	"github.com/towet/payroll-processing-sys/internal/shared/counter"
	"github.com/towet/payroll-processing-sys/internal/taxdetails"
	"github.com/towet/payroll-processing-sys/internal/taxrate"

	"github.com/gin-gonic/gin"
)

func registerModules(router *gin.Engine, infra *Infra) error {
	cfg := infra.Config
	logger := infra.Logger
	db, gormDB, rdb, now := infra.SQLDB, infra.GormDB, infra.Redis, infra.Now

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	activityRepo := dashboard.NewActivityRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	taxDetailsRepo := taxdetails.NewRepository(gormDB)
	taxRateRepo := taxrate.NewRepository(gormDB)

	// --- RBAC & tokens ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}
	tokens := token.NewManager(cfg.Auth.JWTSecret, now)
	authMW := middleware.AuthMiddleware(tokens)
	throttle := auth.NewThrottle(auth.NewRedisAttemptStore(rdb), now, cfg.Auth.ThrottleWindow)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, now, logger)
	authService := auth.NewService(db, authRepo, employeeRepo, tokens, throttle, logger)
	dashboardService := dashboard.NewService(activityRepo, employeeRepo, payrollRepo, taxDetailsRepo, now, logger)
	employeeService := employee.NewService(db, employeeRepo, rdb, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, employeeRepo, now, logger)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, employeeRepo, now, logger)
	payslipService := payslip.NewService(db, payslipRepo, counterRepo, outboxRepo, employeeRepo,
		payslip.WithArchive(payslip.NewDirArchive(cfg.Payslip.StorageDir)),
		payslip.WithClock(now),
		payslip.WithLogger(logger),
	)
	taxDetailsService := taxdetails.NewService(taxDetailsRepo, employeeRepo, now, logger)
	taxRateService := taxrate.NewService(taxRateRepo, rdb, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	payslipHandler := payslip.NewHandler(payslipService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	taxDetailsHandler := taxdetails.NewHandler(taxDetailsService, logger)
	taxRateHandler := taxrate.NewHandler(taxRateService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, rbacService, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, authMW, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, authMW, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, authMW, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, authMW, rbacService, rdb, logger)
		payslip.RegisterRoutes(api, payslipHandler, authMW, rbacService, rdb, logger)
		rbac.RegisterRoutes(api, rbacHandler, authMW, rbacService, logger)
		taxdetails.RegisterRoutes(api, taxDetailsHandler, authMW, rbacService, logger)
		taxrate.RegisterRoutes(api, taxRateHandler, authMW, rbacService, logger)
	}

	return nil
}
