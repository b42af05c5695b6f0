package leave

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/balance"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/events"
	"cdbl-lms/internal/holiday"
	leaveerrors "cdbl-lms/internal/leave/errors"
	"cdbl-lms/internal/notification"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/counter"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/shared/pgerr"
	"cdbl-lms/internal/user"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	UpdateDraft(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	AttachCertificate(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Submit(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Forward(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	Return(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	RequestCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	ApproveCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	RejectCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	Withdraw(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Recall(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveDetailResponse, error)
	List(ctx context.Context, actor domain.Actor, q ListLeaveQuery) ([]LeaveResponse, error)
	ListPendingFor(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	Versions(ctx context.Context, actor domain.Actor, id string) ([]VersionResponse, error)
	Steps(ctx context.Context, actor domain.Actor, id string) ([]StepResponse, error)
}

// Dependencies are the collaborators of the workflow engine. Audit and
// Notifier may be nil.
type Dependencies struct {
	Directory Directory
	Policies  policy.Provider
	Calendar  holiday.Calendar
	Ledger    balance.Ledger
	Counter   counter.Repository
	Audit     audit.Recorder
	Notifier  notification.Notifier
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory Directory
	policies  policy.Provider
	calendar  holiday.Calendar
	ledger    balance.Ledger
	counter   counter.Repository
	audit     audit.Recorder
	notifier  notification.Notifier
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: deps.Directory,
		policies:  deps.Policies,
		calendar:  deps.Calendar,
		ledger:    deps.Ledger,
		counter:   deps.Counter,
		audit:     deps.Audit,
		notifier:  deps.Notifier,
		now:       now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("actor_id", actor.ID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Bool("submit", req.Submit),
	)

	requesterID, err := actorUUID(actor)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !domain.LeaveType(req.LeaveType).Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	pol, err := s.policies.Get(ctx, req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	requester, err := s.findRequester(ctx, actor.ID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:                  uuid.New(),
		RequesterID:         requesterID,
		LeaveType:           req.LeaveType,
		StartDate:           start,
		EndDate:             end,
		Reason:              req.Reason,
		Status:              StatusDraft,
		CertificateAttached: req.CertificateAttached,
		Version:             1,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	action, eventType := audit.ActionLeaveCreated, ""
	var steps []ApprovalStep
	if req.Submit {
		steps, err = s.prepareSubmission(ctx, qtx, l, requester, pol)
		if err != nil {
			log.Warn("create leave validation failed", zap.String("sub_kind", leaveerrors.SubKind(err)), zap.Error(err))
			return LeaveResponse{}, err
		}
		action, eventType = audit.ActionLeaveSubmitted, events.LeaveSubmitted
		if l.Status == StatusApproved {
			action, eventType = audit.ActionLeaveApproved, events.LeaveApproved
		}
	} else {
		if err := s.computeDays(ctx, l, pol); err != nil {
			return LeaveResponse{}, err
		}
	}

	n, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeLeaveReference, strconv.Itoa(l.Year()))
	if err != nil {
		log.Error("create leave reference failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	l.ReferenceNo = counter.LeaveReference(l.Year(), n)

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if len(steps) > 0 {
		if err := qtx.ReplaceSteps(ctx, l.ID.String(), steps); err != nil {
			log.Error("create leave steps failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}
	var detail map[string]any
	if l.Status == StatusApproved {
		res, err := debit(ctx, s.ledger.WithTx(tx), l, actor)
		if err != nil {
			log.Warn("create leave debit failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		detail = map[string]any{"debited": res.Applied.String(), "remaining": res.Balance.Remaining().String()}
	}
	v, err := newVersion(*l, action, requesterID, string(actor.Role))
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.CreateVersion(ctx, v); err != nil {
		log.Error("create leave version failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("reference_no", l.ReferenceNo),
		zap.String("status", l.Status),
	)

	var recipients []events.Recipient
	if len(steps) > 0 {
		recipients = append(recipients, stepRecipient(steps[0]))
	}
	s.publish(ctx, actor, *l, action, eventType, "", detail, recipients)

	return mapToResponse(*l), nil
}

func (s *service) UpdateDraft(ctx context.Context, actor domain.Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	if !domain.LeaveType(req.LeaveType).Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	return s.run(ctx, actor, id, "", transition{
		action: audit.ActionLeaveUpdated,
		from:   []string{StatusDraft, StatusReturned},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireRequester(); err != nil {
				return err
			}
			l := tc.leave
			l.LeaveType = req.LeaveType
			l.StartDate = start
			l.EndDate = end
			l.Reason = req.Reason

			pol, err := s.policies.Get(ctx, l.LeaveType)
			if err != nil {
				return err
			}
			tc.policy = pol
			return s.computeDays(ctx, l, pol)
		},
	})
}

func (s *service) AttachCertificate(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, "", transition{
		action: audit.ActionCertificateAttached,
		from:   []string{StatusDraft, StatusSubmitted, StatusPending, StatusReturned},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireRequester(); err != nil {
				return err
			}
			tc.leave.CertificateAttached = true
			return nil
		},
	})
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, "", transition{
		action: audit.ActionLeaveSubmitted,
		event:  events.LeaveSubmitted,
		from:   []string{StatusDraft, StatusReturned},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireRequester(); err != nil {
				return err
			}
			requester, err := s.findRequester(ctx, tc.leave.RequesterID.String())
			if err != nil {
				return err
			}
			steps, err := s.prepareSubmission(ctx, tc.repo, tc.leave, requester, tc.policy)
			if err != nil {
				return err
			}
			tc.newSteps = steps
			if len(steps) == 0 {
				tc.newSteps = []ApprovalStep{}
				tc.action, tc.event = audit.ActionLeaveApproved, events.LeaveApproved
				return nil
			}
			tc.notify(stepRecipient(steps[0]))
			return nil
		},
		apply: func(ctx context.Context, tc *transitionContext) error {
			if tc.leave.Status != StatusApproved {
				return nil
			}
			return tc.debit(ctx)
		},
	})
}

func (s *service) Forward(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionLeaveForwarded,
		event:    events.LeaveForwarded,
		from:     []string{StatusSubmitted, StatusPending},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			step, err := tc.authorizeDecision()
			if err != nil {
				return err
			}
			if tc.isFinal(step) {
				return leaveerrors.ErrFinalStage
			}
			tc.decide(step, DecisionApproved)
			tc.leave.CurrentStage = step.Sequence + 1
			tc.leave.Status = StatusPending

			next, err := tc.currentStep()
			if err != nil {
				return err
			}
			tc.detail["from_role"] = step.ApproverRole
			tc.detail["to_role"] = next.ApproverRole
			tc.notify(stepRecipient(*next), tc.requester())
			return nil
		},
	})
}

func (s *service) Return(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionLeaveReturned,
		event:    events.LeaveReturned,
		from:     []string{StatusSubmitted, StatusPending},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireComment(); err != nil {
				return err
			}
			step, err := tc.authorizeDecision()
			if err != nil {
				return err
			}
			tc.decide(step, DecisionReturned)
			tc.leave.Status = StatusReturned
			tc.leave.CurrentStage = 0
			tc.notify(tc.requester())
			return nil
		},
	})
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionLeaveApproved,
		event:    events.LeaveApproved,
		from:     []string{StatusSubmitted, StatusPending},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			step, err := tc.authorizeDecision()
			if err != nil {
				return err
			}
			if !tc.isFinal(step) {
				return leaveerrors.ErrNotFinalStage
			}
			if err := ValidateCertificate(tc.policy, tc.leave.WorkingDays, tc.leave.CertificateAttached); err != nil {
				return err
			}
			tc.decide(step, DecisionApproved)
			tc.leave.Status = StatusApproved
			tc.notify(tc.requester())
			return nil
		},
		apply: func(ctx context.Context, tc *transitionContext) error {
			return tc.debit(ctx)
		},
	})
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionLeaveRejected,
		event:    events.LeaveRejected,
		from:     []string{StatusSubmitted, StatusPending},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireComment(); err != nil {
				return err
			}
			step, err := tc.authorizeDecision()
			if err != nil {
				return err
			}
			tc.decide(step, DecisionRejected)
			tc.skipPending()
			tc.leave.Status = StatusRejected
			tc.notify(tc.requester())
			return nil
		},
	})
}

func (s *service) RequestCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action: audit.ActionCancellationRequested,
		event:  events.LeaveCancellationRequested,
		from:   []string{StatusSubmitted, StatusPending},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireRequester(); err != nil {
				return err
			}
			prev := tc.leave.Status
			tc.leave.StatusBeforeCancellation = &prev
			tc.leave.Status = StatusCancellationRequested
			if step, err := tc.currentStep(); err == nil {
				tc.notify(stepRecipient(*step))
			}
			return nil
		},
	})
}

func (s *service) ApproveCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionCancellationApproved,
		event:    events.LeaveCancelled,
		from:     []string{StatusCancellationRequested},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireSupervisor(domain.ActionCancel); err != nil {
				return err
			}
			tc.skipPending()
			tc.leave.Status = StatusCancelled
			tc.leave.StatusBeforeCancellation = nil
			tc.notify(tc.requester())
			return nil
		},
	})
}

func (s *service) RejectCancellation(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action:   audit.ActionCancellationRejected,
		event:    events.LeaveCancellationRejected,
		from:     []string{StatusCancellationRequested},
		decision: true,
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireSupervisor(domain.ActionCancel); err != nil {
				return err
			}
			prev := StatusSubmitted
			if tc.leave.StatusBeforeCancellation != nil {
				prev = *tc.leave.StatusBeforeCancellation
			}
			tc.leave.Status = prev
			tc.leave.StatusBeforeCancellation = nil
			tc.notify(tc.requester())
			return nil
		},
	})
}

func (s *service) Withdraw(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, "", transition{
		action: audit.ActionLeaveWithdrawn,
		from:   []string{StatusDraft, StatusReturned},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireRequester(); err != nil {
				return err
			}
			tc.skipPending()
			tc.leave.Status = StatusCancelled
			return nil
		},
	})
}

func (s *service) Recall(ctx context.Context, actor domain.Actor, id, comment string) (LeaveResponse, error) {
	return s.run(ctx, actor, id, comment, transition{
		action: audit.ActionLeaveRecalled,
		event:  events.LeaveRecalled,
		from:   []string{StatusApproved},
		mutate: func(ctx context.Context, tc *transitionContext) error {
			if err := tc.requireSupervisor(domain.ActionRecall); err != nil {
				return err
			}
			tc.leave.Status = StatusRecalled
			tc.notify(tc.requester())
			return nil
		},
		apply: func(ctx context.Context, tc *transitionContext) error {
			if !tc.policy.RecallCreditsBalance {
				tc.detail["credited"] = "0"
				return nil
			}
			res, err := tc.ledger.Credit(ctx, balance.Operation{
				UserID:      tc.leave.RequesterID.String(),
				LeaveType:   tc.leave.LeaveType,
				Year:        tc.leave.Year(),
				Days:        decimal.NewFromInt(int64(tc.leave.WorkingDays)),
				Type:        balance.TxReversal,
				ReferenceID: tc.leave.ID.String(),
				Note:        tc.leave.ReferenceNo,
				Actor:       tc.actor,
			})
			if err != nil {
				return err
			}
			tc.detail["credited"] = res.Applied.String()
			return nil
		},
	})
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveDetailResponse, error) {
	l, steps, err := s.load(ctx, actor, id)
	if err != nil {
		return LeaveDetailResponse{}, err
	}
	return LeaveDetailResponse{
		LeaveResponse: mapToResponse(*l),
		Steps:         mapStepsResponse(steps),
	}, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q ListLeaveQuery) ([]LeaveResponse, error) {
	from, err := optionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(q.To)
	if err != nil {
		return nil, err
	}

	filter := ListFilter{Status: q.Status, LeaveType: q.LeaveType, From: from, To: to}
	switch {
	case !q.All:
		filter.RequesterID = actor.ID
	case domain.Can(actor.Role, domain.ResourceLeave, domain.ActionReadAll):
		filter.RequesterID = q.UserID
		if actor.Role == domain.RoleDeptHead {
			u, err := s.findRequester(ctx, actor.ID)
			if err != nil {
				return nil, err
			}
			if u.DepartmentID == nil {
				return []LeaveResponse{}, nil
			}
			filter.DepartmentID = u.DepartmentID.String()
		}
	default:
		return nil, apperror.ErrForbidden
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPendingFor(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	if !domain.Can(actor.Role, domain.ResourceLeave, domain.ActionDecide) {
		return []LeaveResponse{}, nil
	}
	leaves, err := s.repo.FindPendingFor(ctx, string(actor.Role), actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		if l.RequesterID.String() == actor.ID {
			continue
		}
		out = append(out, mapToResponse(l))
	}
	return out, nil
}

func (s *service) Versions(ctx context.Context, actor domain.Actor, id string) ([]VersionResponse, error) {
	if _, _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	versions, err := s.repo.FindVersions(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]VersionResponse, 0, len(versions))
	for _, v := range versions {
		snap, err := v.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, VersionResponse{
			Version:   v.Version,
			Action:    v.Action,
			ActorID:   v.ActorID.String(),
			ActorRole: v.ActorRole,
			Snapshot:  snap,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *service) Steps(ctx context.Context, actor domain.Actor, id string) ([]StepResponse, error) {
	_, steps, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return mapStepsResponse(steps), nil
}

// load fetches a request the actor may see: their own, one they hold a
// step on, or any when their role reads all leaves.
func (s *service) load(ctx context.Context, actor domain.Actor, id string) (*LeaveRequest, []ApprovalStep, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapFindError(err)
	}
	steps, err := s.repo.FindSteps(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if l.RequesterID.String() == actor.ID || domain.Can(actor.Role, domain.ResourceLeave, domain.ActionReadAll) {
		return l, steps, nil
	}
	for _, step := range steps {
		if isApprover(step, actor) {
			return l, steps, nil
		}
	}
	return nil, nil, apperror.ErrForbidden
}

func (s *service) findRequester(ctx context.Context, id string) (*user.User, error) {
	u, err := s.directory.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrRequesterNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) holidays(ctx context.Context, pol policy.LeavePolicy, start, end time.Time) (map[string]bool, error) {
	if !pol.WorkingDaysOnly || s.calendar == nil {
		return nil, nil
	}
	return s.calendar.DatesBetween(ctx, start, end)
}

// computeDays refreshes the derived working-day count of a draft.
func (s *service) computeDays(ctx context.Context, l *LeaveRequest, pol policy.LeavePolicy) error {
	if l.EndDate.Before(l.StartDate) {
		return leaveerrors.ErrDateRange
	}
	holidays, err := s.holidays(ctx, pol, l.StartDate, l.EndDate)
	if err != nil {
		return err
	}
	l.WorkingDays = WorkingDays(l.StartDate, l.EndDate, pol.WorkingDaysOnly, holidays)
	return nil
}

// prepareSubmission validates l and moves it to SUBMITTED at stage 0,
// returning the approval chain to persist.
func (s *service) prepareSubmission(ctx context.Context, repo Repository, l *LeaveRequest, requester *user.User, pol policy.LeavePolicy) ([]ApprovalStep, error) {
	holidays, err := s.holidays(ctx, pol, l.StartDate, l.EndDate)
	if err != nil {
		return nil, err
	}
	remaining := decimal.Zero
	if !pol.Uncapped {
		remaining, err = s.ledger.GetRemaining(ctx, l.RequesterID.String(), l.LeaveType, l.Year())
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	days, err := Validate(Proposal{
		Start:          l.StartDate,
		End:            l.EndDate,
		SubmittedOn:    now,
		JoinDate:       requester.JoinDate,
		RetirementDate: requester.RetirementDate,
	}, pol, remaining, holidays)
	if err != nil {
		return nil, err
	}

	exclude := l.ID.String()
	overlap, err := repo.HasOverlap(ctx, l.RequesterID.String(), l.StartDate, l.EndDate, &exclude)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, leaveerrors.ErrLeaveOverlap
	}

	head, err := s.directory.DepartmentHead(ctx, requester.DepartmentID)
	if err != nil {
		return nil, err
	}

	l.WorkingDays = days
	l.Status = StatusSubmitted
	l.CurrentStage = 0
	l.SubmittedAt = &now

	steps := BuildSteps(l.ID, requester.RoleName(), pol, head)
	if len(steps) == 0 {
		if err := ValidateCertificate(pol, days, l.CertificateAttached); err != nil {
			return nil, err
		}
		l.Status = StatusApproved
	}
	return steps, nil
}

// debit charges an approved request to the requester's balance.
func debit(ctx context.Context, ledger balance.Ledger, l *LeaveRequest, actor domain.Actor) (balance.Result, error) {
	return ledger.Debit(ctx, balance.Operation{
		UserID:      l.RequesterID.String(),
		LeaveType:   l.LeaveType,
		Year:        l.Year(),
		Days:        decimal.NewFromInt(int64(l.WorkingDays)),
		ReferenceID: l.ID.String(),
		Note:        l.ReferenceNo,
		Actor:       actor,
	})
}

// BuildSteps returns the approval chain for a requester: the canonical
// order without stages the requester's role already covers or the policy
// skips. When the policy skips every remaining stage the CEO stage is
// kept. A requester at the top of the chain gets no steps and the request
// is approved on submission.
func BuildSteps(leaveID uuid.UUID, requesterRole domain.Role, pol policy.LeavePolicy, deptHead *uuid.UUID) []ApprovalStep {
	if requesterRole.Rank() >= domain.RoleCEO.Rank() {
		return nil
	}

	var roles []domain.Role
	for _, role := range domain.ApprovalChain {
		if role.Rank() <= requesterRole.Rank() || pol.Skips(role) {
			continue
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleCEO}
	}

	steps := make([]ApprovalStep, 0, len(roles))
	for i, role := range roles {
		step := ApprovalStep{
			ID:             uuid.New(),
			LeaveRequestID: leaveID,
			Sequence:       i,
			ApproverRole:   string(role),
			Decision:       DecisionPending,
		}
		if role == domain.RoleDeptHead && deptHead != nil {
			head := *deptHead
			step.ApproverID = &head
		}
		steps = append(steps, step)
	}
	return steps
}

func (s *service) publish(ctx context.Context, actor domain.Actor, l LeaveRequest, action, eventType, comment string, detail map[string]any, recipients []events.Recipient) {
	d := map[string]any{
		"reference_no": l.ReferenceNo,
		"status":       l.Status,
		"version":      l.Version,
	}
	for k, v := range detail {
		d[k] = v
	}
	if comment != "" {
		d["comment"] = comment
	}
	audit.RecordBestEffort(ctx, s.audit, s.logger, audit.Entry{
		Actor:      actor,
		Action:     action,
		TargetType: audit.TargetLeaveRequest,
		TargetID:   l.ID.String(),
		Detail:     d,
	})

	if eventType == "" || len(recipients) == 0 {
		return
	}
	notification.NotifyBestEffort(ctx, s.notifier, s.logger, events.LeaveLifecycleEvent{
		EventType:   eventType,
		LeaveID:     l.ID.String(),
		Reference:   l.ReferenceNo,
		RequesterID: l.RequesterID.String(),
		LeaveType:   l.LeaveType,
		StartDate:   dateutil.Format(l.StartDate),
		EndDate:     dateutil.Format(l.EndDate),
		Status:      l.Status,
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Comment:     comment,
		OccurredAt:  s.now().UTC(),
	}, recipients...)
}

func actorUUID(actor domain.Actor) (uuid.UUID, error) {
	if actor.IsSystem() {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(actor.ID)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	return id, nil
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := dateutil.Parse(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.Parse(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrDateRange
	}
	return start, end, nil
}

func optionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := dateutil.ParseOptional(&v)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func conflictError(err error) error {
	if errors.Is(err, ErrStaleRequest) || pgerr.IsUniqueViolation(err, "") {
		return apperror.ErrConflictingUpdate
	}
	return err
}
