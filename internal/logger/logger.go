// Package logger is the process-wide structured logger. Until Init is called
// every call is discarded, so packages can log unconditionally in tests.
package logger

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes context-aware structured records.
type Logger struct {
	z *zap.Logger
}

var global atomic.Pointer[Logger]

func init() {
	global.Store(&Logger{z: zap.NewNop()})
}

// Init replaces the global logger. level is one of debug, info, warn, error.
func Init(level string, asJSON bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if !asJSON {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}
	global.Store(&Logger{z: z})
	return nil
}

// New wraps z without touching the global logger.
func New(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// Set installs z as the global logger. Tests use it with zaptest/observer.
func Set(z *zap.Logger) {
	global.Store(&Logger{z: z})
}

// L returns the global logger.
func L() *Logger { return global.Load() }

// Sync flushes buffered records.
func Sync() error { return L().z.Sync() }

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// Zap exposes the underlying logger for libraries that take one.
func (l *Logger) Zap() *zap.Logger { return l.z }

func (l *Logger) Debug(_ context.Context, msg string, fields ...Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(_ context.Context, msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(_ context.Context, msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(_ context.Context, msg string, fields ...Field) { l.z.Error(msg, fields...) }

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }
