// Package dblog builds the logger used for the storage engine's
// process-fatal diagnostics (corrupt files, out-of-bounds pages, I/O
// failures). Ordinary REPL output never goes through here: it is
// user-facing protocol text, printed straight to stdout.
package dblog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a sugared logger with a console encoder, suited to a CLI
// tool rather than a long-running service.
func New() (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
