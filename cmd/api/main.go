package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cdbl-lms/internal/app"
	"cdbl-lms/internal/bootstrap"
	"cdbl-lms/internal/config"
	"cdbl-lms/internal/shared/apperror"
	applogger "cdbl-lms/internal/shared/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("LMS_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	infra, err := app.Connect(cfg, logger, true)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	modules, err := app.BuildApp(r, infra)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	if err := modules.SeedPolicies(context.Background(), logger); err != nil {
		logger.Fatal("seed leave policies failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewAuditLifecycleLogger(modules.AuditLog, logger))
}
