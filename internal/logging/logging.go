package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production environments get JSON output,
// everything else the human readable development encoder.
func New(appEnv string, production bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "bitecraft"), zap.String("env", appEnv)), nil
}

// Component returns a named child logger for one package.
func Component(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(name)
}
