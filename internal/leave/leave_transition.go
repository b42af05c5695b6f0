package leave

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cdbl-lms/internal/balance"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/events"
	leaveerrors "cdbl-lms/internal/leave/errors"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
)

// transition is one edge of the leave state machine. mutate changes the
// loaded request in memory; apply runs inside the same transaction after
// the status CAS has succeeded.
type transition struct {
	action   string
	event    string
	from     []string
	decision bool
	mutate   func(ctx context.Context, tc *transitionContext) error
	apply    func(ctx context.Context, tc *transitionContext) error
}

type transitionContext struct {
	actor      domain.Actor
	actorID    uuid.UUID
	comment    string
	now        time.Time
	leave      *LeaveRequest
	steps      []ApprovalStep
	policy     policy.LeavePolicy
	repo       Repository
	ledger     balance.Ledger
	decided    []ApprovalStep
	newSteps   []ApprovalStep
	recipients []events.Recipient
	detail     map[string]any

	// action and event override the transition's own when mutate ends
	// somewhere else, e.g. a submission approved outright.
	action string
	event  string
}

func (s *service) run(ctx context.Context, actor domain.Actor, id, comment string, t transition) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("leave_id", id),
		zap.String("action", t.action),
		zap.String("actor_id", actor.ID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorID, err := actorUUID(actor)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("leave transition begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapFindError(err)
	}
	if !slices.Contains(t.from, l.Status) {
		log.Warn("leave transition rejected", zap.String("status", l.Status))
		if t.decision && l.IsTerminal() {
			return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
		}
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition.WithDetails(map[string]string{"status": l.Status})
	}

	steps, err := qtx.FindSteps(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	pol, err := s.policies.Get(ctx, l.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}

	tc := &transitionContext{
		actor:   actor,
		actorID: actorID,
		comment: comment,
		now:     s.now(),
		leave:   l,
		steps:   steps,
		policy:  pol,
		repo:    qtx,
		ledger:  s.ledger.WithTx(tx),
		detail:  map[string]any{"from_status": l.Status},
	}

	expectedStatus, expectedVersion := l.Status, l.Version
	if err := t.mutate(ctx, tc); err != nil {
		log.Warn("leave transition refused", zap.String("sub_kind", leaveerrors.SubKind(err)), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Version = expectedVersion + 1
	if err := qtx.UpdateWithCAS(ctx, l, expectedStatus, expectedVersion); err != nil {
		log.Warn("leave transition lost race", zap.Error(err))
		return LeaveResponse{}, conflictError(err)
	}
	for i := range tc.decided {
		if err := qtx.UpdateStep(ctx, &tc.decided[i], DecisionPending); err != nil {
			return LeaveResponse{}, conflictError(err)
		}
	}
	if tc.newSteps != nil {
		if err := qtx.ReplaceSteps(ctx, id, tc.newSteps); err != nil {
			log.Error("leave transition steps failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}
	if t.apply != nil {
		if err := t.apply(ctx, tc); err != nil {
			log.Warn("leave transition effect failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	action, event := t.action, t.event
	if tc.action != "" {
		action, event = tc.action, tc.event
	}

	v, err := newVersion(*l, action, actorID, string(actor.Role))
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.CreateVersion(ctx, v); err != nil {
		return LeaveResponse{}, conflictError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("leave transition commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("leave transition applied",
		zap.String("status", l.Status),
		zap.Int("version", l.Version),
	)

	s.publish(ctx, actor, *l, action, event, comment, tc.detail, tc.recipients)

	return mapToResponse(*l), nil
}

func (tc *transitionContext) debit(ctx context.Context) error {
	res, err := debit(ctx, tc.ledger, tc.leave, tc.actor)
	if err != nil {
		return err
	}
	tc.detail["debited"] = res.Applied.String()
	tc.detail["remaining"] = res.Balance.Remaining().String()
	return nil
}

func (tc *transitionContext) notify(recipients ...events.Recipient) {
	tc.recipients = append(tc.recipients, recipients...)
}

func (tc *transitionContext) requester() events.Recipient {
	return events.Recipient{UserID: tc.leave.RequesterID.String()}
}

func (tc *transitionContext) requireRequester() error {
	if tc.leave.RequesterID != tc.actorID {
		return leaveerrors.ErrNotRequester
	}
	return nil
}

func (tc *transitionContext) requireComment() error {
	if tc.comment == "" {
		return leaveerrors.ErrCommentRequired
	}
	return nil
}

// requireSupervisor guards the cancellation and recall paths, which are
// decided by capability rather than by the current step.
func (tc *transitionContext) requireSupervisor(action string) error {
	if !domain.Can(tc.actor.Role, domain.ResourceLeave, action) {
		return apperror.ErrForbidden
	}
	if tc.leave.RequesterID == tc.actorID {
		return leaveerrors.ErrOwnRequest
	}
	return nil
}

func (tc *transitionContext) currentStep() (*ApprovalStep, error) {
	for i := range tc.steps {
		if tc.steps[i].Sequence == tc.leave.CurrentStage {
			return &tc.steps[i], nil
		}
	}
	return nil, leaveerrors.ErrInvalidStatusTransition
}

func (tc *transitionContext) authorizeDecision() (*ApprovalStep, error) {
	step, err := tc.currentStep()
	if err != nil {
		return nil, err
	}
	if !isApprover(*step, tc.actor) {
		return nil, leaveerrors.ErrNotCurrentApprover
	}
	if step.Decision != DecisionPending {
		return nil, leaveerrors.ErrAlreadyDecided
	}
	if tc.leave.RequesterID == tc.actorID {
		return nil, leaveerrors.ErrOwnRequest
	}
	return step, nil
}

func (tc *transitionContext) isFinal(step *ApprovalStep) bool {
	for _, other := range tc.steps {
		if other.Sequence > step.Sequence {
			return false
		}
	}
	return true
}

func (tc *transitionContext) decide(step *ApprovalStep, decision string) {
	at := tc.now
	by := tc.actorID
	step.Decision = decision
	step.DecidedBy = &by
	step.DecidedAt = &at
	step.Comment = tc.comment
	tc.decided = append(tc.decided, *step)
}

// skipPending closes every step still waiting once the request ends early.
func (tc *transitionContext) skipPending() {
	at := tc.now
	for i := range tc.steps {
		if tc.steps[i].Decision != DecisionPending {
			continue
		}
		tc.steps[i].Decision = DecisionSkipped
		tc.steps[i].DecidedAt = &at
		tc.decided = append(tc.decided, tc.steps[i])
	}
}

func isApprover(step ApprovalStep, actor domain.Actor) bool {
	if step.ApproverRole != string(actor.Role) {
		return false
	}
	return step.ApproverID == nil || step.ApproverID.String() == actor.ID
}

func stepRecipient(step ApprovalStep) events.Recipient {
	r := events.Recipient{Role: step.ApproverRole}
	if step.ApproverID != nil {
		r.UserID = step.ApproverID.String()
	}
	return r
}
