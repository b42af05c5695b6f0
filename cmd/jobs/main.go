// Command jobs runs one scheduled leave job and exits, for use from an
// external scheduler:
//
//	jobs -job monthly_accrual
//	jobs -job annual_lapse -as-of 2025-12-31
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cdbl-lms/internal/app"
	"cdbl-lms/internal/config"
	"cdbl-lms/internal/jobs"
	applogger "cdbl-lms/internal/shared/logger"
)

func main() {
	job := flag.String("job", "", "job to run: "+jobs.JobMonthlyAccrual+" or "+jobs.JobAnnualLapse)
	asOf := flag.String("as-of", "", "date inside the period to process (YYYY-MM-DD); defaults to the period that just closed")
	configFile := flag.String("config", os.Getenv("LMS_CONFIG_FILE"), "config file path")
	printResults := flag.Bool("print", false, "write per-user results as JSON to stdout")
	flag.Parse()

	if *job == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := applogger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	res, err := app.RunJob(cfg, logger, *job, *asOf)
	if err != nil {
		logger.Fatal("run job failed", zap.String("job", *job), zap.Error(err))
	}

	if *printResults {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			logger.Error("print results failed", zap.Error(err))
		}
	}
	if res.Counts.Failed > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}
