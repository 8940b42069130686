package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	AccessLogger = zap.NewNop()
	DBLogger     = zap.NewNop()
)

func newLogger(outputPath string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if outputPath == "" {
		outputPath = "stdout"
	}
	cfg.OutputPaths = []string{outputPath}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// InitLoggers builds the access and database loggers. Empty paths log to stdout.
func InitLoggers(accessPath, dbPath string) error {
	var err error
	AccessLogger, err = newLogger(accessPath)
	if err != nil {
		return err
	}

	DBLogger, err = newLogger(dbPath)
	if err != nil {
		return err
	}

	return nil
}

func SyncLoggers() error {
	err := AccessLogger.Sync()
	if err != nil {
		return err
	}
	err = DBLogger.Sync()
	if err != nil {
		return err
	}
	return nil
}
