package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"cdbl-lms/internal/shared/pgerr"
)

func TestIsUniqueViolation(t *testing.T) {
	pg := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, pgerr.IsUniqueViolation(pg, "users_email_key"))
	assert.True(t, pgerr.IsUniqueViolation(fmt.Errorf("wrap: %w", pg), ""))
	assert.False(t, pgerr.IsUniqueViolation(pg, "holidays_date_key"))
	assert.False(t, pgerr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.True(t, pgerr.IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "holidays_date_key"`), "holidays_date_key"))
	assert.False(t, pgerr.IsUniqueViolation(nil, ""))
}
