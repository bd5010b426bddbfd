package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a console logger. Only warnings and errors are shown unless
// debug is set.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
		cfg.EncoderConfig.TimeKey = ""
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}
