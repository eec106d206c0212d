package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	level string
	zl    zerolog.Logger
}

// New logs to stderr in the given format ("json" or "console").
func New(level, format string) *Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter builds a logger writing to w. Format "json" emits raw
// zerolog JSON lines; anything else uses the console writer.
func NewWithWriter(level, format string, w io.Writer) *Logger {
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	}

	zl := zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
	return &Logger{
		level: strings.ToLower(level),
		zl:    zl,
	}
}

// With returns a child logger that tags every entry with key=value.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		level: l.level,
		zl:    l.zl.With().Interface(key, value).Logger(),
	}
}

func (l *Logger) Level() string {
	return l.level
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.zl.Info().Msg(format(msg, args))
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.zl.Debug().Msg(format(msg, args))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msg(format(msg, args))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msg(format(msg, args))
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.zl.WithLevel(zerolog.FatalLevel).Msg(format(msg, args))
	os.Exit(1)
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	if strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...)
	}
	// Handles ("msg:", err) calls that carry no verbs.
	return fmt.Sprint(append([]interface{}{msg, " "}, args...)...)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
