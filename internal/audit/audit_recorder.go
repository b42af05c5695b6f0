package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"cdbl-lms/internal/shared/contextutil"
)

// Recorder appends to the audit trail.
//
//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Record(ctx context.Context, entry Entry) error {
	log := &AuditLog{
		ID:         uuid.New(),
		ActorRole:  string(entry.Actor.Role),
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Detail:     datatypes.JSON("{}"),
		RequestID:  contextutil.GetRequestID(ctx),
	}
	if id, err := uuid.Parse(entry.Actor.ID); err == nil {
		log.ActorID = &id
	}
	if len(entry.Detail) > 0 {
		raw, err := json.Marshal(entry.Detail)
		if err != nil {
			return err
		}
		log.Detail = datatypes.JSON(raw)
	}

	if err := r.repo.Create(ctx, log); err != nil {
		contextutil.GetLogger(ctx, r.logger).Error("write audit log failed",
			zap.String("action", entry.Action),
			zap.String("target_id", entry.TargetID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// RecordBestEffort writes entry and only logs a failure.
func RecordBestEffort(ctx context.Context, r Recorder, logger *zap.Logger, entry Entry) {
	if r == nil {
		return
	}
	if err := r.Record(ctx, entry); err != nil {
		contextutil.GetLogger(ctx, logger).Warn("audit sink failed",
			zap.String("action", entry.Action),
			zap.String("target_id", entry.TargetID),
			zap.Error(err),
		)
	}
}
