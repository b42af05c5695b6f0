package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cdbl-lms/internal/config"
	"cdbl-lms/internal/jobs"
	jobserrors "cdbl-lms/internal/jobs/errors"
	"cdbl-lms/internal/shared/dateutil"
)

// RunJob runs one scheduled job to completion. An empty asOf selects the
// period that has just closed.
func RunJob(cfg *config.Config, logger *zap.Logger, job, asOf string) (jobs.RunResult, error) {
	log := logger.Named("app.jobs").With(zap.String("job", job))

	at := jobs.DefaultAsOf(job, time.Now())
	if asOf != "" {
		parsed, err := dateutil.Parse(asOf)
		if err != nil {
			return jobs.RunResult{}, jobserrors.ErrInvalidAsOf
		}
		at = parsed
	}

	in, err := Connect(cfg, logger, true)
	if err != nil {
		return jobs.RunResult{}, err
	}
	defer in.Close()

	modules, err := NewModules(in)
	if err != nil {
		return jobs.RunResult{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := jobs.Run(ctx, modules.Jobs, job, at)
	if err != nil {
		return jobs.RunResult{}, err
	}

	log.Info("job finished",
		zap.String("period", res.Period),
		zap.Int("processed", res.Counts.Processed),
		zap.Int("applied", res.Counts.Applied),
		zap.Int("skipped", res.Counts.Skipped),
		zap.Int("failed", res.Counts.Failed),
	)
	return res, nil
}
