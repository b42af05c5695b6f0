package holiday

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cdbl-lms/internal/audit"
	"cdbl-lms/internal/domain"
	holidayerrors "cdbl-lms/internal/holiday/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/contextutil"
	"cdbl-lms/internal/shared/dateutil"
	"cdbl-lms/internal/shared/pgerr"
)

// Calendar answers which dates are public holidays.
type Calendar interface {
	DatesBetween(ctx context.Context, from, to time.Time) (map[string]bool, error)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Calendar
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Create(ctx context.Context, actor domain.Actor, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	ImportICS(ctx context.Context, actor domain.Actor, r io.Reader) (ImportResult, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, audit: recorder, logger: l}
}

func (s *service) DatesBetween(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	holidays, err := s.repo.FindBetween(ctx, dateutil.Day(from), dateutil.Day(to))
	if err != nil {
		return nil, err
	}

	dates := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		dates[dateutil.Format(h.Date)] = true
	}
	return dates, nil
}

func (s *service) List(ctx context.Context, year int) ([]HolidayResponse, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := s.repo.FindBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateHolidayRequest) (HolidayResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !canManage(actor) {
		return HolidayResponse{}, apperror.ErrForbidden
	}

	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return HolidayResponse{}, apperror.InvalidField("date")
	}

	h := &Holiday{
		ID:     uuid.New(),
		Date:   date,
		Title:  req.Title,
		Source: SourceManual,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return HolidayResponse{}, holidayerrors.ErrHolidayExists
		}
		log.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	audit.RecordBestEffort(ctx, s.audit, log, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionHolidayCreated,
		TargetType: audit.TargetHoliday,
		TargetID:   h.ID.String(),
		Detail:     map[string]any{"date": req.Date, "title": req.Title},
	})
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !canManage(actor) {
		return apperror.ErrForbidden
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	audit.RecordBestEffort(ctx, s.audit, s.logger, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionHolidayDeleted,
		TargetType: audit.TargetHoliday,
		TargetID:   id,
		Detail:     map[string]any{"date": dateutil.Format(h.Date), "title": h.Title},
	})
	return nil
}

// ImportICS stores every day of every calendar event; dates that already
// have a holiday are skipped.
func (s *service) ImportICS(ctx context.Context, actor domain.Actor, r io.Reader) (ImportResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !canManage(actor) {
		return ImportResult{}, apperror.ErrForbidden
	}

	holidays, err := ParseICS(r)
	if err != nil {
		log.Warn("holiday calendar rejected", zap.Error(err))
		return ImportResult{}, holidayerrors.ErrInvalidCalendar
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	inserted, err := s.repo.WithTx(tx).InsertIgnoreDuplicates(ctx, holidays)
	if err != nil {
		log.Error("import holidays failed", zap.Error(err))
		return ImportResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Imported: int(inserted), Skipped: len(holidays) - int(inserted)}
	audit.RecordBestEffort(ctx, s.audit, log, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionHolidaysImported,
		TargetType: audit.TargetHoliday,
		TargetID:   "*",
		Detail:     map[string]any{"imported": result.Imported, "skipped": result.Skipped},
	})

	log.Info("holiday calendar imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:     h.ID.String(),
		Date:   dateutil.Format(h.Date),
		Title:  h.Title,
		Source: h.Source,
	}
}

func canManage(actor domain.Actor) bool {
	return domain.Can(actor.Role, domain.ResourceHoliday, domain.ActionManage)
}
