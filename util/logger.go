package util

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	// Level is a zap level name; unknown values fall back to info.
	Level string
	// File enables an additional rotated JSON log file.
	File       string
	Production bool
}

// NewLogger builds the process logger. Output always goes to stdout; JSON in
// production and a colored console layout otherwise.
func NewLogger(opts LoggerOptions) *zap.Logger {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	jsonConfig := zap.NewProductionEncoderConfig()
	jsonConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var stdout zapcore.Encoder
	if opts.Production {
		stdout = zapcore.NewJSONEncoder(jsonConfig)
	} else {
		dev := zap.NewDevelopmentEncoderConfig()
		dev.EncodeLevel = zapcore.CapitalColorLevelEncoder
		dev.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		stdout = zapcore.NewConsoleEncoder(dev)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdout, zapcore.Lock(os.Stdout), level),
	}
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonConfig), zapcore.AddSync(rotated), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
