// Package logging provides the process-wide structured logger
// (logging.Debug/Info/Warn/Error with zap.Field arguments) so call sites
// read the same way regardless of which component they're in.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger = zap.NewNop()
)

// Config controls how the global logger is built.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// Development enables human-friendly console encoding.
	Development bool
	// FilePath, when non-empty, additionally rotates logs through
	// lumberjack instead of relying on the caller's log rotation.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init (re)configures the global logger. Safe to call once at process
// start; subsequent calls replace the logger atomically.
func Init(cfg Config) error {
	level := zap.InfoLevel
	_ = level.UnmarshalText([]byte(cfg.Level))

	encoderCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encoderCfg)
	if cfg.Development {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level),
	}

	if cfg.FilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	built := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	mu.Lock()
	logger = built
	mu.Unlock()
	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level with structured fields.
func Debug(msg string, fields ...zap.Field) { current().Debug(msg, fields...) }

// Info logs at info level with structured fields.
func Info(msg string, fields ...zap.Field) { current().Info(msg, fields...) }

// Warn logs at warn level with structured fields.
func Warn(msg string, fields ...zap.Field) { current().Warn(msg, fields...) }

// Error logs at error level with structured fields.
func Error(msg string, fields ...zap.Field) { current().Error(msg, fields...) }

// Sync flushes any buffered log entries.
func Sync() error { return current().Sync() }
