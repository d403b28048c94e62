package watermillx

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// SlogAdapter bridges watermill logging onto slog. Records below the
// severity the OTel log provider accepts are dropped so the router's
// poll chatter does not flood exports.
type SlogAdapter struct {
	logger     *slog.Logger
	minLevel   slog.Level
	otelLogger log.Logger
}

func NewSlogAdapter(logger *slog.Logger, minLevel slog.Level) watermill.LoggerAdapter {
	return &SlogAdapter{
		logger:     logger,
		minLevel:   minLevel,
		otelLogger: global.GetLoggerProvider().Logger("watermill"),
	}
}

func (l *SlogAdapter) enabled(level slog.Level) bool {
	var severity log.Severity
	switch {
	case level >= slog.LevelError:
		severity = log.SeverityError
	case level >= slog.LevelWarn:
		severity = log.SeverityWarn
	case level >= slog.LevelInfo:
		severity = log.SeverityInfo
	case level >= slog.LevelDebug:
		severity = log.SeverityDebug
	default:
		severity = log.SeverityTrace
	}

	return l.otelLogger.Enabled(context.Background(), log.EnabledParameters{Severity: severity})
}

func (l *SlogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	if l.enabled(slog.LevelError) {
		l.logger.ErrorContext(context.Background(), msg, l.attrs(fields, slog.Any("error", err))...)
	}
}

func (l *SlogAdapter) Info(msg string, fields watermill.LogFields) {
	if l.enabled(slog.LevelInfo) {
		l.logger.InfoContext(context.Background(), msg, l.attrs(fields)...)
	}
}

func (l *SlogAdapter) Debug(msg string, fields watermill.LogFields) {
	if l.enabled(slog.LevelDebug) {
		l.logger.DebugContext(context.Background(), msg, l.attrs(fields)...)
	}
}

func (l *SlogAdapter) Trace(msg string, fields watermill.LogFields) {
	if l.minLevel < slog.LevelDebug {
		l.logger.DebugContext(context.Background(), msg, l.attrs(fields)...)
	}
}

func (l *SlogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &SlogAdapter{
		logger:     l.logger.With(l.attrs(fields)...),
		minLevel:   l.minLevel,
		otelLogger: l.otelLogger,
	}
}

func (l *SlogAdapter) attrs(fields watermill.LogFields, extra ...slog.Attr) []any {
	out := make([]any, 0, len(fields)+len(extra))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	for _, attr := range extra {
		out = append(out, attr)
	}
	return out
}
