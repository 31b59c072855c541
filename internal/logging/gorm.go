package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's SQL log through zap. Queries are logged at debug
// level in development and only warnings and errors otherwise.
func GormLogger(logger *zap.Logger, development bool) gormlogger.Interface {
	level := gormlogger.Warn
	stdLevel := zapcore.WarnLevel
	if development {
		level = gormlogger.Info
		stdLevel = zapcore.DebugLevel
	}

	writer, err := zap.NewStdLogAt(logger.Named("gorm"), stdLevel)
	if err != nil {
		writer = zap.NewStdLog(logger.Named("gorm"))
	}

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
