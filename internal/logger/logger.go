// Package logger builds the zap logger the rest of the service shares.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared zap logger. Production gets the JSON encoder,
// anything else the human-readable development one; debug lowers the
// level either way.
func New(env string, debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Sugar(), nil
}
