package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestJSONSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, err := build(Config{Level: "info", Format: FormatJSON}, zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("round played")
	logger.Error("prediction failed")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "round played")
	assert.NotContains(t, stdout.String(), "prediction failed")
	assert.Contains(t, stderr.String(), "prediction failed")

	var entry map[string]interface{}
	line := strings.TrimSpace(stdout.String())
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "caller")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T`, entry["ts"])
}

func TestConsoleWritesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, err := build(Config{Level: "warn", Format: FormatConsole}, zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	require.NoError(t, logger.Sync())

	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "quiet")
	assert.Contains(t, stderr.String(), "WARN")
	assert.Contains(t, stderr.String(), "loud")
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{Level: "loud", Format: FormatJSON})
	assert.Error(t, err)

	_, err = New(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GME_LOG_LEVEL", "debug")
	t.Setenv("GME_LOG_FORMAT", "json")
	assert.Equal(t, Config{Level: "debug", Format: FormatJSON}, ConfigFromEnv())
}
