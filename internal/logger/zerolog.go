package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// zerologLogger implements Logger on top of rs/zerolog
type zerologLogger struct {
	logger zerolog.Logger
	level  Level
}

// NewZerologLogger creates a new Logger backed by zerolog. Text format, or a
// terminal on stdout, switches to the human-readable console writer.
func NewZerologLogger(cfg Config) Logger {
	out := cfg.output()
	if cfg.Format == "text" || isTerminal(out) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zctx := zerolog.New(out).Level(toZerologLevel(cfg.Level)).With().Timestamp()
	if cfg.AddSource {
		zctx = zctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1)
	}

	return &zerologLogger{
		logger: zctx.Logger(),
		level:  cfg.Level,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func fieldsToMap(fields []Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (l *zerologLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug().Fields(fieldsToMap(fields)).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...Field) {
	l.logger.Info().Fields(fieldsToMap(fields)).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn().Fields(fieldsToMap(fields)).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...Field) {
	l.logger.Error().Fields(fieldsToMap(fields)).Msg(msg)
}

func (l *zerologLogger) With(fields ...Field) Logger {
	return &zerologLogger{
		logger: l.logger.With().Fields(fieldsToMap(fields)).Logger(),
		level:  l.level,
	}
}

func (l *zerologLogger) WithContext(ctx context.Context) Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *zerologLogger) Level() Level {
	return l.level
}
