package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Debug mode uses zap's development
// config at full verbosity; otherwise the production config is capped
// at warnings so stdout stays clean for the rendered report. Both
// configs log to stderr with console encoding.
func New(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	return cfg.Build()
}
