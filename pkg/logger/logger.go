package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production emits JSON, anything else the
// colored development console output.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "production" {
		return zap.NewProductionConfig().Build()
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapConfig.Build()
}

// Init builds the logger and installs it as the zap global.
func Init(appEnv string) *zap.Logger {
	logger, err := New(appEnv)
	if err != nil {
		logger = zap.NewExample()
	}
	zap.ReplaceGlobals(logger)
	return logger
}
