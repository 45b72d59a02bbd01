package report

import (
	"context"
	"log/slog"
	"os"
	"sort"
)

// AuditLogger appends one JSON object per pipeline event to the run log.
type AuditLogger struct {
	file   *os.File
	logger *slog.Logger
}

func NewAuditLogger(path string) (*AuditLogger, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &AuditLogger{
		file:   f,
		logger: slog.New(h),
	}, nil
}

func (l *AuditLogger) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
}

func (l *AuditLogger) Info(event string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, event, fields)
}

func (l *AuditLogger) Warn(event string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, event, fields)
}

func (l *AuditLogger) log(level slog.Level, event string, fields map[string]interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.logger.Log(context.Background(), level, event, slog.Group("fields", attrs...))
}
