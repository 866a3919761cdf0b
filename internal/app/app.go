package app

import (
	"context"
	"database/sql"
	"time"

	"leavesync/internal/attendance"
	"leavesync/internal/config"
	"leavesync/internal/employee"
	"leavesync/internal/leave"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/middleware"
	"leavesync/internal/penalty"
	"leavesync/internal/rbac"
	"leavesync/internal/rollover"
	"leavesync/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

func postgresConfig(cfg config.Config) connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}
}

// Resources are the long-lived connections owned by the API process.
type Resources struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (r Resources) Close() {
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.SQLDB != nil {
		_ = r.SQLDB.Close()
	}
}

// BuildApp connects infrastructure, migrates the schema and mounts every module on router.
func BuildApp(router *gin.Engine, cfg config.Config) (Resources, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), connectRetries)
	if err != nil {
		return Resources{}, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return Resources{}, err
	}
	res := Resources{GormDB: gormDB, SQLDB: sqlDB}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		res.Close()
		return Resources{}, err
	}
	res.Redis = rdb

	if cfg.DBAutoMigrate {
		if err := migrate(gormDB, sqlDB); err != nil {
			res.Close()
			return Resources{}, err
		}
		logger.Info("schema migrated")
	}

	router.Use(
		middleware.RequestID(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key", "X-Request-ID", "X-Client-Type"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Idempotent-Replay"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.ContextLogger(zap.L().Named("http")),
	)

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		res.Close()
		return Resources{}, err
	}
	return res, nil
}

// migrate creates employees first since every other table references it.
func migrate(gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.AutoMigrate(&employee.Employee{}); err != nil {
		return err
	}
	if err := gormDB.AutoMigrate(
		&leave.Leave{},
		&attendance.Attendance{},
		&penalty.Penalty{},
		&rbac.RolePermission{},
		&rollover.Run{},
	); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return kafka.EnsureSchema(ctx, sqlDB)
}
