package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger wraps slog with the structured fields every service mode emits
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the given service mode
func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a unique identifier for request correlation
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, requestID, fields)
}

func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, requestID, fields)
}

func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	attrs := l.baseAttrs(action, requestID)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	attrs = append(attrs, fieldAttrs(fields)...)
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, fields map[string]interface{}) {
	attrs := l.baseAttrs(action, requestID)
	attrs = append(attrs, fieldAttrs(fields)...)
	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}

func (l *Logger) baseAttrs(action, requestID string) []slog.Attr {
	return []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
}

func fieldAttrs(fields map[string]interface{}) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
