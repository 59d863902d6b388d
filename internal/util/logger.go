package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the sugared logger used across the app. Env is optional so unit tests can
// call NewLogger() and get a development logger.
func NewLogger(env ...string) *zap.SugaredLogger {
	var logger *zap.SugaredLogger

	if len(env) > 0 && env[0] == "production" {
		logger = zap.Must(zap.NewProduction()).Sugar()
	} else {
		logger = zap.Must(zap.NewDevelopment()).Sugar()
	}

	defer logger.Sync()

	return logger
}

// NewFileLogger tees the console logger into a rotated log file.
func NewFileLogger(env, path string) *zap.SugaredLogger {
	base := NewLogger(env)
	if path == "" {
		return base
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 10,
		MaxAge:     7, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, zapcore.InfoLevel)

	return zap.New(zapcore.NewTee(base.Desugar().Core(), fileCore), zap.AddCaller()).Sugar()
}
