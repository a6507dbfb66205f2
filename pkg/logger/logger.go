package logger

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	sugar.Store(zap.NewNop().Sugar())
}

// Init builds the process-wide logger (called once from main). Until then
// every call is a no-op, which keeps library users and tests quiet.
func Init(env, level string) error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = env == "production"

	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	lg, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("logger: build failed: %w", err)
	}

	sugar.Store(lg.Sugar())
	return nil
}

// Set replaces the process-wide logger.
func Set(lg *zap.Logger) {
	sugar.Store(lg.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Infof(format string, v ...any) {
	sugar.Load().Infof(format, v...)
}

func Warnf(format string, v ...any) {
	sugar.Load().Warnf(format, v...)
}

func Errorf(format string, v ...any) {
	sugar.Load().Errorf(format, v...)
}

func Debugf(format string, v ...any) {
	sugar.Load().Debugf(format, v...)
}

func Fatalf(format string, v ...any) {
	sugar.Load().Fatalf(format, v...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = sugar.Load().Sync()
}
