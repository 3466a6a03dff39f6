// Package logging builds the zap logger used across booktrack. The TUI owns
// the terminal, so logs always go to a file.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/booktrack/internal/config"
)

// New opens cfg.LogFile for appending and returns a JSON logger writing to it
// plus a function that flushes and closes the file.
func New(cfg config.Config) (*zap.Logger, func(), error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zap.New(zapcore.NewCore(encoder(), zapcore.AddSync(file), level),
		zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	logger = logger.With(zap.Int("pid", os.Getpid()))

	flush := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error flushing log entries:", err)
		}
		_ = file.Close()
	}
	return logger, flush, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(trimmed))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

func encoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = "level"
	cfg.MessageKey = "msg"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stacktrace"
	return zapcore.NewJSONEncoder(cfg)
}
