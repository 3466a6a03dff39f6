package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/booktrack/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "nested", "booktrack.log")
	cfg.LogLevel = "debug"

	logger, flush, err := New(cfg)
	require.NoError(t, err)
	logger.Debug("request completed", zap.String("endpoint", "books"))
	flush()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"request completed"`)
	assert.Contains(t, line, `"endpoint":"books"`)
	assert.Contains(t, line, `"level":"debug"`)
}

func TestNew_LevelFilters(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "booktrack.log")
	cfg.LogLevel = "warn"

	logger, flush, err := New(cfg)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	flush()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = ParseLevel(" ERROR ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
