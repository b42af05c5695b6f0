package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/dateutil"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListAuditQuery) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListAuditQuery) ([]AuditLogResponse, error) {
	filter := ListFilter{
		ActorID:    q.ActorID,
		Action:     q.Action,
		TargetType: q.TargetType,
		TargetID:   q.TargetID,
	}

	if q.From != "" {
		from, err := dateutil.Parse(q.From)
		if err != nil {
			return nil, apperror.InvalidField("from")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := dateutil.Parse(q.To)
		if err != nil {
			return nil, apperror.InvalidField("to")
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	logs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func mapToResponse(l AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         l.ID.String(),
		ActorRole:  l.ActorRole,
		Action:     l.Action,
		TargetType: l.TargetType,
		TargetID:   l.TargetID,
		RequestID:  l.RequestID,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ActorID != nil {
		v := l.ActorID.String()
		resp.ActorID = &v
	}
	if len(l.Detail) > 0 {
		_ = json.Unmarshal(l.Detail, &resp.Detail)
	}
	return resp
}
