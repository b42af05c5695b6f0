package holiday_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	auditMock "cdbl-lms/internal/audit/mock"
	"cdbl-lms/internal/domain"
	"cdbl-lms/internal/holiday"
	holidayerrors "cdbl-lms/internal/holiday/errors"
	holidayMock "cdbl-lms/internal/holiday/mock"
	"cdbl-lms/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var hrAdmin = domain.Actor{ID: uuid.NewString(), Role: domain.RoleHRAdmin}

func TestHolidayService_DatesBetween(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := holidayMock.NewMockRepository(ctrl)
	svc := holiday.NewService(nil, repo, nil)
	ctx := context.Background()

	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().FindBetween(ctx, from, to).Return([]holiday.Holiday{
		{Date: time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), Title: "Victory Day"},
		{Date: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), Title: "Christmas"},
	}, nil)

	dates, err := svc.DatesBetween(ctx, from, to)

	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{"2024-12-16": true, "2024-12-25": true}, dates)
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		rec := auditMock.NewMockRecorder(ctrl)
		svc := holiday.NewService(nil, repo, rec)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		rec.EXPECT().Record(ctx, gomock.Any()).Return(nil)

		resp, err := svc.Create(ctx, hrAdmin, holiday.CreateHolidayRequest{Date: "2025-02-21", Title: "Language Martyrs' Day"})

		assert.NoError(t, err)
		assert.Equal(t, "2025-02-21", resp.Date)
		assert.Equal(t, holiday.SourceManual, resp.Source)
	})

	t.Run("duplicate date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := holidayMock.NewMockRepository(ctrl)
		svc := holiday.NewService(nil, repo, nil)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New(`duplicate key value violates unique constraint "holidays_date_key"`))

		_, err := svc.Create(ctx, hrAdmin, holiday.CreateHolidayRequest{Date: "2025-02-21", Title: "x"})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayExists)
	})

	t.Run("bad date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := holiday.NewService(nil, holidayMock.NewMockRepository(ctrl), nil)

		_, err := svc.Create(ctx, hrAdmin, holiday.CreateHolidayRequest{Date: "21/02/2025", Title: "x"})

		assert.Error(t, err)
	})
}

func TestHolidayService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := holidayMock.NewMockRepository(ctrl)
	svc := holiday.NewService(nil, repo, nil)
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, "h-1").Return(nil, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, hrAdmin, "h-1"), holidayerrors.ErrHolidayNotFound)
}

func TestHolidayService_ImportICS(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := holidayMock.NewMockRepository(ctrl)
	rec := auditMock.NewMockRecorder(ctrl)

	db, mock, _ := sqlmock.New()
	defer db.Close()
	svc := holiday.NewService(db, repo, rec)

	calendar := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//T//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:a\r\nDTSTART;VALUE=DATE:20250326\r\nSUMMARY:Independence Day\r\nEND:VEVENT\r\n" +
		"BEGIN:VEVENT\r\nUID:b\r\nDTSTART;VALUE=DATE:20250414\r\nSUMMARY:Pohela Boishakh\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	mock.ExpectBegin()
	mock.ExpectCommit()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().InsertIgnoreDuplicates(ctx, gomock.Len(2)).Return(int64(1), nil)
	rec.EXPECT().Record(ctx, gomock.Any()).Return(nil)

	result, err := svc.ImportICS(ctx, hrAdmin, strings.NewReader(calendar))

	assert.NoError(t, err)
	assert.Equal(t, holiday.ImportResult{Imported: 1, Skipped: 1}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayService_EmployeeForbidden(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	svc := holiday.NewService(nil, holidayMock.NewMockRepository(ctrl), auditMock.NewMockRecorder(ctrl))
	employee := domain.Actor{ID: uuid.NewString(), Role: domain.RoleEmployee}

	_, err := svc.Create(ctx, employee, holiday.CreateHolidayRequest{Date: "2025-02-21", Title: "x"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, employee, "h-1"), apperror.ErrForbidden)

	_, err = svc.ImportICS(ctx, employee, strings.NewReader("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestHolidayService_ImportICS_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := holiday.NewService(nil, holidayMock.NewMockRepository(ctrl), nil)

	_, err := svc.ImportICS(context.Background(), hrAdmin, strings.NewReader("garbage"))

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidCalendar)
}
