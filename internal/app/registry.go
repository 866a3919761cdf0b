package app

import (
	"context"
	"database/sql"
	"time"

	"leavesync/internal/attendance"
	"leavesync/internal/auth"
	"leavesync/internal/balance"
	"leavesync/internal/config"
	"leavesync/internal/dashboard"
	"leavesync/internal/employee"
	"leavesync/internal/leave"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/middleware"
	"leavesync/internal/penalty"
	"leavesync/internal/rbac"
	"leavesync/internal/rbac/infra"
	"leavesync/internal/rollover"
	"leavesync/internal/rules"
	"leavesync/internal/shared/audit"

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
	logger := zap.L()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	lateness, err := rules.NewLatenessPolicy(
		cfg.ScheduledStart,
		time.Duration(cfg.GraceMinutes)*time.Minute,
		cfg.LatePenaltyDays,
		loc,
	)
	if err != nil {
		return err
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	penaltyRepo := penalty.NewRepository(gormDB)
	rolloverRepo := rollover.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	balances := balance.NewStore(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rbacService.Load(ctx); err != nil {
		return err
	}
	guard := middleware.Guard{Secret: cfg.JWTSecret, RBAC: rbacService}

	// --- Services ---
	auditLogger := audit.NewStdoutLogger(logger)
	penaltyService := penalty.NewService(db, penaltyRepo, balances, loc, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, attendance.Options{
		Lateness:        lateness,
		AutoLatePenalty: cfg.AutoLatePenalty,
		Penalties:       penaltyService,
	}, logger)
	employeeService := employee.NewService(employeeRepo, attendanceService, loc, logger)
	authService := auth.NewService(db, employeeRepo, outboxRepo, auth.Config{Secret: cfg.JWTSecret}, logger)
	leaveService := leave.NewService(db, leaveRepo, balances, attendanceRepo, outboxRepo, leave.Config{
		MedicalAllowance: cfg.MedicalAllowance,
		Location:         loc,
	}, logger)
	rolloverService := rollover.NewService(db, rolloverRepo, employeeRepo, balances, rdb, auditLogger, rollover.Config{Location: loc}, logger)
	dashboardService := dashboard.NewService(dashboardRepo, rdb, dashboard.Config{Location: loc}, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	penaltyHandler := penalty.NewHandler(penaltyService, logger)
	rolloverHandler := rollover.NewHandler(rolloverService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, guard)
		employee.RegisterRoutes(api, employeeHandler, guard)
		leave.RegisterRoutes(api, leaveHandler, guard, rdb)
		penalty.RegisterRoutes(api, penaltyHandler, guard)
		rollover.RegisterRoutes(api, rolloverHandler, guard)
		dashboard.RegisterRoutes(api, dashboardHandler, guard)
		rbac.RegisterRoutes(api, rbacHandler, guard)
	}

	return nil
}
