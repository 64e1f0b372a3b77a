package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction
type Options struct {
	Development bool
	Level       string // debug, info, warn, error; empty keeps the mode default
	Encoding    string // json or console; empty keeps the mode default
}

// New creates a zap logger. Logs always go to stderr so that reports on
// stdout stay clean.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config

	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		cfg.Level = level
	}
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
