package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	*zap.Logger
}

type rotateConfig struct {
	maxSize    int
	maxBackups int
	maxAge     int
}

type loggerConfig struct {
	noStdout     bool
	rotateConfig *rotateConfig
}

type Option func(*loggerConfig)

func NoStdout(l *loggerConfig) {
	l.noStdout = true
}

// WithRotateLog rotates the log file, maxSize in megabytes and maxAge in days.
func WithRotateLog(maxSize, maxBackups, maxAge int) Option {
	return func(l *loggerConfig) {
		l.rotateConfig = &rotateConfig{
			maxSize:    maxSize,
			maxBackups: maxBackups,
			maxAge:     maxAge,
		}
	}
}

func NewLogger(path string, level Level, options ...Option) (*Logger, error) {
	var config loggerConfig
	for _, option := range options {
		option(&config)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	var cores []zapcore.Core
	if !config.noStdout {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	if path != "" {
		var writer zapcore.WriteSyncer
		if config.rotateConfig != nil {
			writer = zapcore.AddSync(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    config.rotateConfig.maxSize,
				MaxBackups: config.rotateConfig.maxBackups,
				MaxAge:     config.rotateConfig.maxAge,
			})
		} else {
			file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, errors.Wrap(err, "open log file failed")
			}
			writer = zapcore.Lock(file)
		}
		cores = append(cores, zapcore.NewCore(encoder, writer, level))
	}

	return &Logger{Logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller())}, nil
}

func CreateNoOpLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
