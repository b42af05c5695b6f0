package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/domain"
	policyerrors "cdbl-lms/internal/policy/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
)

const (
	PolicyAllKey = "leave_policies:all"
	CacheTTL     = 30 * time.Minute
)

// Provider is the read side other modules depend on.
type Provider interface {
	Get(ctx context.Context, leaveType string) (LeavePolicy, error)
	List(ctx context.Context) ([]LeavePolicy, error)
}

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	Provider
	Update(ctx context.Context, actor domain.Actor, leaveType string, req UpdatePolicyRequest) (LeavePolicy, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, audit: recorder, logger: l}
}

func (s *service) List(ctx context.Context) ([]LeavePolicy, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, PolicyAllKey).Result()
		if err == nil {
			var policies []LeavePolicy
			if err := json.Unmarshal([]byte(cached), &policies); err == nil {
				return policies, nil
			}
		}
	}

	v, err, _ := s.sf.Do(PolicyAllKey, func() (interface{}, error) {
		policies, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if raw, err := json.Marshal(policies); err == nil {
				s.rdb.Set(ctx, PolicyAllKey, raw, CacheTTL)
			}
		}
		return policies, nil
	})
	if err != nil {
		s.logger.Error("load leave policies failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeavePolicy), nil
}

func (s *service) Get(ctx context.Context, leaveType string) (LeavePolicy, error) {
	if !domain.LeaveType(leaveType).Valid() {
		return LeavePolicy{}, policyerrors.ErrInvalidLeaveType
	}

	policies, err := s.List(ctx)
	if err != nil {
		return LeavePolicy{}, err
	}
	for _, p := range policies {
		if p.LeaveType == leaveType {
			return p, nil
		}
	}
	return LeavePolicy{}, policyerrors.ErrPolicyNotFound
}

func (s *service) Update(ctx context.Context, actor domain.Actor, leaveType string, req UpdatePolicyRequest) (LeavePolicy, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave policy requested", zap.String("leave_type", leaveType), zap.String("actor_id", actor.ID))

	if !domain.Can(actor.Role, domain.ResourcePolicy, domain.ActionUpdate) {
		log.Warn("update leave policy forbidden", zap.String("role", string(actor.Role)))
		return LeavePolicy{}, apperror.ErrForbidden
	}
	if !domain.LeaveType(leaveType).Valid() {
		return LeavePolicy{}, policyerrors.ErrInvalidLeaveType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update leave policy begin tx failed", zap.Error(err))
		return LeavePolicy{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByType(ctx, leaveType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeavePolicy{}, policyerrors.ErrPolicyNotFound
		}
		return LeavePolicy{}, err
	}

	before := *p
	if err := applyUpdate(p, req); err != nil {
		log.Warn("update leave policy rejected", zap.String("leave_type", leaveType), zap.Error(err))
		return LeavePolicy{}, err
	}
	if id, err := uuid.Parse(actor.ID); err == nil {
		p.UpdatedBy = &id
	}

	if err := qtx.Save(ctx, p); err != nil {
		log.Error("update leave policy persist failed", zap.Error(err))
		return LeavePolicy{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update leave policy commit failed", zap.Error(err))
		return LeavePolicy{}, err
	}

	s.invalidate(ctx)
	audit.RecordBestEffort(ctx, s.audit, log, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionPolicyUpdated,
		TargetType: audit.TargetPolicy,
		TargetID:   leaveType,
		Detail:     map[string]any{"before": before, "after": *p},
	})

	log.Info("leave policy updated", zap.String("leave_type", leaveType))
	return *p, nil
}

// SeedDefaults inserts Defaults when no policy exists yet and reports how
// many rows were written.
func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	defaults := Defaults()
	if err := s.repo.CreateBatch(ctx, defaults); err != nil {
		s.logger.Error("seed leave policies failed", zap.Error(err))
		return 0, err
	}

	s.invalidate(ctx)
	audit.RecordBestEffort(ctx, s.audit, s.logger, audit.Entry{
		Actor:      domain.SystemActor,
		Action:     audit.ActionPolicySeeded,
		TargetType: audit.TargetPolicy,
		TargetID:   "*",
		Detail:     map[string]any{"count": len(defaults)},
	})

	s.logger.Info("leave policies seeded", zap.Int("count", len(defaults)))
	return len(defaults), nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, PolicyAllKey).Err(); err != nil {
		s.logger.Warn("invalidate policy cache failed", zap.Error(err))
	}
}

func applyUpdate(p *LeavePolicy, req UpdatePolicyRequest) error {
	ints := []struct {
		field string
		src   *int
		dst   *int
	}{
		{"max_consecutive_days", req.MaxConsecutiveDays, &p.MaxConsecutiveDays},
		{"min_days", req.MinDays, &p.MinDays},
		{"notice_days_required", req.NoticeDaysRequired, &p.NoticeDaysRequired},
		{"certificate_after_days", req.CertificateAfterDays, &p.CertificateAfterDays},
		{"retirement_buffer_days", req.RetirementBufferDays, &p.RetirementBufferDays},
	}
	for _, f := range ints {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return apperror.InvalidField(f.field)
		}
		*f.dst = *f.src
	}

	decs := []struct {
		field string
		src   *float64
		dst   *decimal.Decimal
	}{
		{"carry_forward_limit", req.CarryForwardLimit, &p.CarryForwardLimit},
		{"annual_cap", req.AnnualCap, &p.AnnualCap},
		{"accrual_per_month", req.AccrualPerMonth, &p.AccrualPerMonth},
	}
	for _, f := range decs {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return apperror.InvalidField(f.field)
		}
		*f.dst = decimal.NewFromFloat(*f.src).Round(2)
	}

	bools := []struct {
		src *bool
		dst *bool
	}{
		{req.NoticeExempt, &p.NoticeExempt},
		{req.Uncapped, &p.Uncapped},
		{req.WorkingDaysOnly, &p.WorkingDaysOnly},
		{req.CarryForwardEligible, &p.CarryForwardEligible},
		{req.RecallCreditsBalance, &p.RecallCreditsBalance},
		{req.CountsAsDuty, &p.CountsAsDuty},
	}
	for _, f := range bools {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if req.SkipStages != nil {
		roles := make([]domain.Role, 0, len(req.SkipStages))
		for _, r := range req.SkipStages {
			role := domain.Role(r)
			if role.Rank() == 0 {
				return apperror.InvalidField("skip_stages")
			}
			roles = append(roles, role)
		}
		p.SkipStages = skipStagesJSON(roles...)
	}

	if p.MinDays > 0 && p.MaxConsecutiveDays > 0 && p.MinDays > p.MaxConsecutiveDays {
		return apperror.InvalidField("min_days")
	}
	return nil
}

func ToResponse(p LeavePolicy) PolicyResponse {
	skip := make([]string, 0)
	for _, r := range p.SkipRoles() {
		skip = append(skip, string(r))
	}
	return PolicyResponse{
		LeaveType:            p.LeaveType,
		MaxConsecutiveDays:   p.MaxConsecutiveDays,
		MinDays:              p.MinDays,
		NoticeDaysRequired:   p.NoticeDaysRequired,
		NoticeExempt:         p.NoticeExempt,
		CarryForwardLimit:    p.CarryForwardLimit.InexactFloat64(),
		AnnualCap:            p.AnnualCap.InexactFloat64(),
		AccrualPerMonth:      p.AccrualPerMonth.InexactFloat64(),
		Uncapped:             p.Uncapped,
		WorkingDaysOnly:      p.WorkingDaysOnly,
		CarryForwardEligible: p.CarryForwardEligible,
		CertificateAfterDays: p.CertificateAfterDays,
		RetirementBufferDays: p.RetirementBufferDays,
		SkipStages:           skip,
		RecallCreditsBalance: p.RecallCreditsBalance,
		CountsAsDuty:         p.CountsAsDuty,
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}
}
