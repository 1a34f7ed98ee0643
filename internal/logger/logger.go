// Package logger is a thin nil-safe wrapper over zerolog. A nil *Logger
// discards everything, so components can hold one unconditionally.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	NoColor       bool
	Writer        io.Writer
}

// Logger wraps zerolog with the handful of calls the engine needs.
type Logger struct {
	base zerolog.Logger
}

// New creates a Logger from opts. An empty level means info.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.TimeOnly
		console.NoColor = opts.NoColor
		output = console
	}

	return &Logger{base: zerolog.New(output).Level(level).With().Timestamp().Logger()}, nil
}

// With returns a derived logger that always writes the given key/value pairs.
// A trailing key without a value is ignored.
func (l *Logger) With(kv ...any) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.base.With()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, kv[i+1])
	}
	return &Logger{base: ctx.Logger()}
}

// Component is With("component", name).
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// DebugEnabled reports whether debug entries are written. Callers use it to
// skip building expensive fields.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.base.GetLevel() <= zerolog.DebugLevel
}

// Debug writes a debug entry.
func (l *Logger) Debug(msg string, kv ...any) {
	if l == nil {
		return
	}
	fields(l.base.Debug(), kv).Msg(msg)
}

// Info writes an informational entry.
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil {
		return
	}
	fields(l.base.Info(), kv).Msg(msg)
}

// Warn writes a warning entry.
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil {
		return
	}
	fields(l.base.Warn(), kv).Msg(msg)
}

// Error writes an error entry including err.
func (l *Logger) Error(err error, msg string, kv ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	fields(event, kv).Msg(msg)
}

func fields(event *zerolog.Event, kv []any) *zerolog.Event {
	if event == nil {
		return nil
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			event = event.Interface(key, kv[i+1])
		}
	}
	return event
}
