package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cdbl-lms/internal/app"
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

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
