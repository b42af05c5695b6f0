package bootstrap

import (
	"context"
	"os"

	"go.uber.org/zap"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/domain"
)

type LifecycleEvent struct {
	Action  string
	Message string
	Meta    map[string]any
}

// LifecycleLogger records process start and stop.
type LifecycleLogger interface {
	Log(ctx context.Context, event LifecycleEvent)
}

type AuditLifecycleLogger struct {
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewAuditLifecycleLogger writes lifecycle events to the log and, when a
// recorder is given, to the audit trail as the system actor.
func NewAuditLifecycleLogger(recorder audit.Recorder, logger *zap.Logger) *AuditLifecycleLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &AuditLifecycleLogger{recorder: recorder, logger: logger.Named("lifecycle")}
}

func (l *AuditLifecycleLogger) Log(ctx context.Context, event LifecycleEvent) {
	host, _ := os.Hostname()
	l.logger.Info("lifecycle event",
		zap.String("action", event.Action),
		zap.String("message", event.Message),
		zap.String("host", host),
		zap.Any("meta", event.Meta),
	)

	detail := map[string]any{"message": event.Message}
	for k, v := range event.Meta {
		detail[k] = v
	}
	audit.RecordBestEffort(ctx, l.recorder, l.logger, audit.Entry{
		Actor:      domain.SystemActor,
		Action:     event.Action,
		TargetType: audit.TargetServer,
		TargetID:   host,
		Detail:     detail,
	})
}
