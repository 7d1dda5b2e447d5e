package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/akolanti/EarningsAPI/internal/config"
)

// Logger resolves slog.Default on every call, so package-level loggers
// created before Init still follow the handler Init installs.
type Logger struct {
	attrs []any
}

// Init installs the process-wide handler. Servers log to stdout; the CLI
// passes stderr so the report stays alone on stdout.
func Init(out io.Writer, level slog.Level) {
	if out == nil {
		out = os.Stdout
	}
	options := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if config.IS_PROD {
		if level < config.LOG_LEVEL_PROD {
			options.Level = config.LOG_LEVEL_PROD
		}
		handler = slog.NewJSONHandler(out, options)

	} else {
		handler = slog.NewTextHandler(out, options)

	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{attrs: []any{"component", section}}
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	inner := slog.Default()
	if !inner.Enabled(context.Background(), level) {
		return
	}
	inner.With(l.attrs...).Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	return &Logger{attrs: append(attrs, args...)}
}

// WithTrace attaches the trace id carried by ctx, if any.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}
