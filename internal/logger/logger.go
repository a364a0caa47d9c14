package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger creates a zap logger with production configuration, falling
// back to a no-op logger if the build fails
func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewDevelopmentLogger creates a zap logger configured for development use
func NewDevelopmentLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build development logger: %w", err)
	}
	return logger, nil
}
