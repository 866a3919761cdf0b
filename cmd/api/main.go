package main

import (
	"leavesync/internal/app"
	"leavesync/internal/bootstrap"
	"leavesync/internal/config"
	"leavesync/internal/shared/apperror"
	"leavesync/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	res, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer res.Close()

	bootstrap.StartHTTPServer(r, bootstrap.DefaultServerConfig(cfg.Port), audit.NewStdoutLogger(logger))
}
