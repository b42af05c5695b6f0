package logger_test

import (
	"testing"

	"cdbl-lms/internal/config"
	"cdbl-lms/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "warn", Format: "console"})
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = logger.New(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
