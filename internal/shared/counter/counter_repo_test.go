package counter_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cdbl-lms/internal/shared/counter"
)

func TestRepository_GetNextValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO counters")).
		WithArgs(counter.TypeLeaveReference, "2025").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(42)))

	repo := counter.NewRepository(gdb)
	n, err := repo.GetNextValue(context.Background(), counter.TypeLeaveReference, "2025")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, "LV-2025-000042", counter.LeaveReference(2025, n))
	assert.NoError(t, mock.ExpectationsWereMet())
}
