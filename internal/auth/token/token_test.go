package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	autherrors "cdbl-lms/internal/auth/errors"
)

func TestGenerateAndParse(t *testing.T) {
	secret := "unit-test-secret-123"
	now := time.Now()

	signed, err := Generate(secret, "u-1", "DEPT_HEAD", TypeAccess, time.Minute, now)
	assert.NoError(t, err)

	claims, err := Parse(secret, signed, TypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "DEPT_HEAD", claims.Role)

	_, err = Parse("another-secret-456789", signed, TypeAccess)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)

	expired, _ := Generate(secret, "u-1", "DEPT_HEAD", TypeAccess, time.Minute, now.Add(-time.Hour))
	_, err = Parse(secret, expired, TypeAccess)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}
