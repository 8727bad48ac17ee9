// Package logging wires up the structured zap loggers used across the
// simulation kernel: JSON-encoded, ISO8601-timestamped, optionally
// tee'd to a file alongside stdout.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console-only structured logger at info level.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// NewWithFile returns a logger that writes JSON records to both stdout
// and logPath, creating the containing directory if needed.
func NewWithFile(logPath string) (*zap.Logger, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewJSONEncoder(encoderCfg)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(file), zap.InfoLevel),
	)

	return zap.New(core), nil
}

// Component namespaces commonly used by the driver, transport, and
// accounting layers, so log lines are filterable by subsystem.
const (
	ComponentDriver     = "driver"
	ComponentTransport  = "transport"
	ComponentAccounting = "accounting"
	ComponentBook       = "book"
)

// For returns a logger scoped to a named component via zap's Named,
// the pattern used throughout the kernel instead of ad hoc fields.
func For(base *zap.Logger, component string) *zap.Logger {
	return base.Named(component)
}
