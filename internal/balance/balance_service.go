package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cdbl-lms/internal/audit"
	balanceerrors "cdbl-lms/internal/balance/errors"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/policy"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/pgerr"
)

// Ledger is the write side used by the workflow engine and the jobs. A
// ledger bound with WithTx joins the caller's transaction instead of
// opening its own.
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	GetRemaining(ctx context.Context, userID, leaveType string, year int) (decimal.Decimal, error)
	Debit(ctx context.Context, op Operation) (Result, error)
	Credit(ctx context.Context, op Operation) (Result, error)
	Accrue(ctx context.Context, op Operation) (Result, error)
	Lapse(ctx context.Context, userID, leaveType string, year int) (LapseResult, error)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Ledger
	List(ctx context.Context, userID string, year int) ([]BalanceResponse, error)
	ListYear(ctx context.Context, year int) ([]Balance, error)
	Transactions(ctx context.Context, userID, leaveType string, year int) ([]TransactionResponse, error)
	Adjust(ctx context.Context, actor domain.Actor, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db       *sql.DB
	tx       *sql.Tx
	repo     Repository
	policies policy.Provider
	audit    audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policies policy.Provider, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, policies: policies, audit: recorder, logger: l}
}

func (s *service) WithTx(tx *sql.Tx) Ledger {
	return &service{
		db:       s.db,
		tx:       tx,
		repo:     s.repo,
		policies: s.policies,
		audit:    s.audit,
		logger:   s.logger,
	}
}

func (s *service) inTx(ctx context.Context, fn func(repo Repository) error) error {
	if s.tx != nil {
		return fn(s.repo.WithTx(s.tx))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) GetRemaining(ctx context.Context, userID, leaveType string, year int) (decimal.Decimal, error) {
	b, err := s.repo.FindByKey(ctx, userID, leaveType, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return b.Remaining(), nil
}

func (s *service) Debit(ctx context.Context, op Operation) (Result, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !op.Days.IsPositive() {
		return Result{}, balanceerrors.ErrInvalidAmount
	}
	userID, err := uuid.Parse(op.UserID)
	if err != nil {
		return Result{}, balanceerrors.ErrInvalidUserID
	}
	p, err := s.policies.Get(ctx, op.LeaveType)
	if err != nil {
		return Result{}, err
	}
	op.Type = TxDebit
	key := op.key()

	var res Result
	err = s.inTx(ctx, func(repo Repository) error {
		done, err := repo.TransactionExists(ctx, key)
		if err != nil {
			return err
		}
		b, err := repo.GetOrCreate(ctx, userID, op.LeaveType, op.Year)
		if err != nil {
			return err
		}
		if done {
			res = Result{Balance: *b, Duplicate: true}
			return nil
		}

		remaining := b.Remaining()
		if !p.Uncapped && remaining.LessThan(op.Days) {
			return balanceerrors.ErrInsufficientBalance.WithDetails(map[string]string{
				"remaining": remaining.String(),
				"requested": op.Days.String(),
			})
		}

		b.Used = b.Used.Add(op.Days)
		if b.ClosingOverride.Valid {
			b.ClosingOverride.Decimal = b.ClosingOverride.Decimal.Sub(op.Days)
		}
		if err := s.apply(ctx, repo, b, op, op.Days, key); err != nil {
			return err
		}
		res = Result{Balance: *b, Applied: op.Days}
		return nil
	})
	if err != nil {
		log.Warn("debit failed",
			zap.String("user_id", op.UserID),
			zap.String("leave_type", op.LeaveType),
			zap.String("idempotency_key", key),
			zap.Error(err),
		)
		return Result{}, err
	}

	log.Info("balance debited",
		zap.String("user_id", op.UserID),
		zap.String("leave_type", op.LeaveType),
		zap.String("days", op.Days.String()),
		zap.Bool("duplicate", res.Duplicate),
	)
	return res, nil
}

// Credit gives days back. REVERSAL undoes a debit and ADJUSTMENT moves the
// opening by a signed amount.
func (s *service) Credit(ctx context.Context, op Operation) (Result, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if op.Type == "" {
		op.Type = TxReversal
	}
	switch op.Type {
	case TxReversal:
		if !op.Days.IsPositive() {
			return Result{}, balanceerrors.ErrInvalidAmount
		}
	case TxAdjustment:
		if op.Days.IsZero() {
			return Result{}, balanceerrors.ErrInvalidAmount
		}
	default:
		return Result{}, balanceerrors.ErrInvalidTransactionType
	}
	userID, err := uuid.Parse(op.UserID)
	if err != nil {
		return Result{}, balanceerrors.ErrInvalidUserID
	}
	key := op.key()

	var res Result
	err = s.inTx(ctx, func(repo Repository) error {
		done, err := repo.TransactionExists(ctx, key)
		if err != nil {
			return err
		}
		b, err := repo.GetOrCreate(ctx, userID, op.LeaveType, op.Year)
		if err != nil {
			return err
		}
		if done {
			res = Result{Balance: *b, Duplicate: true}
			return nil
		}

		applied := op.Days
		switch op.Type {
		case TxReversal:
			if applied.GreaterThan(b.Used) {
				applied = b.Used
			}
			b.Used = b.Used.Sub(applied)
		case TxAdjustment:
			if b.Remaining().Add(applied).IsNegative() {
				return balanceerrors.ErrInsufficientBalance.WithDetails(map[string]string{
					"remaining": b.Remaining().String(),
					"requested": applied.Neg().String(),
				})
			}
			b.Opening = b.Opening.Add(applied)
		}
		if b.ClosingOverride.Valid {
			b.ClosingOverride.Decimal = b.ClosingOverride.Decimal.Add(applied)
		}

		if err := s.apply(ctx, repo, b, op, applied, key); err != nil {
			return err
		}
		res = Result{Balance: *b, Applied: applied}
		return nil
	})
	if err != nil {
		log.Warn("credit failed",
			zap.String("user_id", op.UserID),
			zap.String("type", op.Type),
			zap.String("idempotency_key", key),
			zap.Error(err),
		)
		return Result{}, err
	}

	log.Info("balance credited",
		zap.String("user_id", op.UserID),
		zap.String("leave_type", op.LeaveType),
		zap.String("type", op.Type),
		zap.String("days", res.Applied.String()),
		zap.Bool("duplicate", res.Duplicate),
	)
	return res, nil
}

// Accrue adds to the accrued bucket, never past the policy's annual cap.
func (s *service) Accrue(ctx context.Context, op Operation) (Result, error) {
	if !op.Days.IsPositive() {
		return Result{}, balanceerrors.ErrInvalidAmount
	}
	userID, err := uuid.Parse(op.UserID)
	if err != nil {
		return Result{}, balanceerrors.ErrInvalidUserID
	}
	p, err := s.policies.Get(ctx, op.LeaveType)
	if err != nil {
		return Result{}, err
	}
	op.Type = TxAccrual
	key := op.key()

	var res Result
	err = s.inTx(ctx, func(repo Repository) error {
		done, err := repo.TransactionExists(ctx, key)
		if err != nil {
			return err
		}
		b, err := repo.GetOrCreate(ctx, userID, op.LeaveType, op.Year)
		if err != nil {
			return err
		}
		if done {
			res = Result{Balance: *b, Duplicate: true}
			return nil
		}

		applied := op.Days
		if p.AnnualCap.IsPositive() {
			room := p.AnnualCap.Sub(b.Accrued)
			if !room.IsPositive() {
				res = Result{Balance: *b, Applied: decimal.Zero}
				return nil
			}
			if applied.GreaterThan(room) {
				applied = room
			}
		}

		b.Accrued = b.Accrued.Add(applied)
		if err := s.apply(ctx, repo, b, op, applied, key); err != nil {
			return err
		}
		res = Result{Balance: *b, Applied: applied}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Lapse closes a leave year. Types that do not carry forward drop to zero.
// Carry-forward types keep up to the carry limit (zero meaning no limit),
// the rest moves to the excess bucket and the carried amount becomes the
// opening of the next year.
func (s *service) Lapse(ctx context.Context, userID, leaveType string, year int) (LapseResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return LapseResult{}, balanceerrors.ErrInvalidUserID
	}
	p, err := s.policies.Get(ctx, leaveType)
	if err != nil {
		return LapseResult{}, err
	}

	lapseKey := fmt.Sprintf("lapse:%s:%s:%d", userID, leaveType, year)
	carryKey := fmt.Sprintf("carry:%s:%s:%d", userID, leaveType, year)

	var res LapseResult
	err = s.inTx(ctx, func(repo Repository) error {
		guard := lapseKey
		if p.CarryForwardEligible {
			guard = carryKey
		}
		done, err := repo.TransactionExists(ctx, guard)
		if err != nil {
			return err
		}
		b, err := repo.FindByKey(ctx, userID, leaveType, year)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.NoBalance = true
			return nil
		}
		if err != nil {
			return err
		}
		res.Balance = *b
		if done {
			res.Duplicate = true
			return nil
		}

		remaining := b.Remaining()
		if !remaining.IsPositive() {
			return nil
		}

		if !p.CarryForwardEligible {
			b.Lapsed = b.Lapsed.Add(remaining)
			b.ClosingOverride = decimal.NewNullDecimal(decimal.Zero)
			op := Operation{UserID: userID, LeaveType: leaveType, Year: year, Type: TxLapse, Actor: domain.SystemActor}
			if err := s.apply(ctx, repo, b, op, remaining, lapseKey); err != nil {
				return err
			}
			res.Balance = *b
			res.Lapsed = remaining
			return nil
		}

		carry := remaining
		if p.CarryForwardLimit.IsPositive() && carry.GreaterThan(p.CarryForwardLimit) {
			carry = p.CarryForwardLimit
		}
		if excess := remaining.Sub(carry); excess.IsPositive() {
			b.Excess = b.Excess.Add(excess)
			b.ClosingOverride = decimal.NewNullDecimal(carry)
			op := Operation{UserID: userID, LeaveType: leaveType, Year: year, Type: TxLapse, Note: "moved to excess bucket", Actor: domain.SystemActor}
			if err := s.apply(ctx, repo, b, op, excess, lapseKey); err != nil {
				return err
			}
			res.Balance = *b
			res.Excess = excess
		}

		next, err := repo.GetOrCreate(ctx, uid, leaveType, year+1)
		if err != nil {
			return err
		}
		next.Opening = carry
		op := Operation{UserID: userID, LeaveType: leaveType, Year: year + 1, Type: TxCarryForward, Actor: domain.SystemActor}
		if err := s.apply(ctx, repo, next, op, carry, carryKey); err != nil {
			return err
		}
		res.CarriedForward = carry
		return nil
	})
	if err != nil {
		log.Warn("lapse failed",
			zap.String("user_id", userID),
			zap.String("leave_type", leaveType),
			zap.Int("year", year),
			zap.Error(err),
		)
		return LapseResult{}, err
	}
	return res, nil
}

// apply persists b with a version check and appends the ledger row.
func (s *service) apply(ctx context.Context, repo Repository, b *Balance, op Operation, amount decimal.Decimal, key string) error {
	if err := repo.UpdateWithCAS(ctx, b, b.Version); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return apperror.ErrConflictingUpdate
		}
		return err
	}

	t := &Transaction{
		ID:             uuid.New(),
		BalanceID:      b.ID,
		UserID:         b.UserID,
		LeaveType:      b.LeaveType,
		Year:           b.Year,
		Type:           op.Type,
		Amount:         amount,
		IdempotencyKey: key,
		Note:           op.Note,
	}
	if op.ReferenceID != "" {
		ref := op.ReferenceID
		t.ReferenceID = &ref
	}
	if id, err := uuid.Parse(op.Actor.ID); err == nil {
		t.CreatedBy = &id
	}

	if err := repo.InsertTransaction(ctx, t); err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return apperror.ErrConflictingUpdate
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, userID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	balances, err := s.repo.FindByUserYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = ToResponse(b)
	}
	return resp, nil
}

func (s *service) ListYear(ctx context.Context, year int) ([]Balance, error) {
	return s.repo.FindByYear(ctx, year)
}

func (s *service) Transactions(ctx context.Context, userID, leaveType string, year int) ([]TransactionResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	txs, err := s.repo.FindTransactions(ctx, userID, leaveType, year)
	if err != nil {
		return nil, err
	}

	resp := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = TransactionResponse{
			ID:             t.ID.String(),
			LeaveType:      t.LeaveType,
			Year:           t.Year,
			Type:           t.Type,
			Amount:         t.Amount,
			IdempotencyKey: t.IdempotencyKey,
			ReferenceID:    t.ReferenceID,
			Note:           t.Note,
			CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) Adjust(ctx context.Context, actor domain.Actor, req AdjustBalanceRequest) (BalanceResponse, error) {
	if !domain.Can(actor.Role, domain.ResourceBalance, domain.ActionAdjust) {
		return BalanceResponse{}, apperror.ErrForbidden
	}
	if !domain.LeaveType(req.LeaveType).Valid() {
		return BalanceResponse{}, apperror.InvalidField("leave_type")
	}

	res, err := s.Credit(ctx, Operation{
		UserID:         req.UserID,
		LeaveType:      req.LeaveType,
		Year:           req.Year,
		Days:           req.Days,
		Type:           TxAdjustment,
		IdempotencyKey: "adjust:" + uuid.NewString(),
		Note:           req.Note,
		Actor:          actor,
	})
	if err != nil {
		return BalanceResponse{}, err
	}

	audit.RecordBestEffort(ctx, s.audit, s.logger, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionBalanceAdjusted,
		TargetType: audit.TargetBalance,
		TargetID:   res.Balance.ID.String(),
		Detail: map[string]any{
			"user_id":    req.UserID,
			"leave_type": req.LeaveType,
			"year":       req.Year,
			"days":       req.Days.String(),
			"note":       req.Note,
		},
	})
	return ToResponse(res.Balance), nil
}

func (op Operation) key() string {
	if op.IdempotencyKey != "" {
		return op.IdempotencyKey
	}
	return strings.ToLower(op.Type) + ":" + op.ReferenceID
}

func ToResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{
		UserID:    b.UserID.String(),
		LeaveType: b.LeaveType,
		Year:      b.Year,
		Opening:   b.Opening,
		Accrued:   b.Accrued,
		Used:      b.Used,
		Lapsed:    b.Lapsed,
		Excess:    b.Excess,
		Remaining: b.Remaining(),
		Version:   b.Version,
	}
	if b.ClosingOverride.Valid {
		v := b.ClosingOverride.Decimal
		resp.ClosingOverride = &v
	}
	return resp
}
