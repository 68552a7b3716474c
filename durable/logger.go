package durable

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type LoggerClient struct {
	base *zap.Logger
}

func NewLoggerClient(development bool) (*LoggerClient, error) {
	var logger *zap.Logger
	var err error
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &LoggerClient{base: logger}, nil
}

func (client *LoggerClient) Close() {
	client.base.Sync()
}

type Logger struct {
	sugar *zap.SugaredLogger
}

func BuildLogger(client *LoggerClient, service string, r *http.Request) *Logger {
	logger := client.base.With(
		zap.String("service", service),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get("X-Request-Id")),
	)
	return &Logger{sugar: logger.Sugar()}
}

func (logger *Logger) FillResponse(status int, size int64, spent time.Duration) {
	logger.sugar = logger.sugar.With(
		"status", status,
		"size", size,
		"runtime", spent.Seconds(),
	)
}

func (logger *Logger) Info(args ...interface{}) {
	logger.sugar.Info(args...)
}

func (logger *Logger) Infof(format string, args ...interface{}) {
	logger.sugar.Infof(format, args...)
}

func (logger *Logger) Error(args ...interface{}) {
	logger.sugar.Error(args...)
}

func (logger *Logger) Errorf(format string, args ...interface{}) {
	logger.sugar.Errorf(format, args...)
}
