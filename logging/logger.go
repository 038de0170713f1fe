package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used throughout the planner and its
// supporting packages. It wraps zap's SugaredLogger so callers get
// printf-style methods (Debugf, Infof, Warnf, Errorf) while entries are
// fanned out to one or more Appenders.
type Logger struct {
	*zap.SugaredLogger
}

// appenderCore adapts a set of Appenders to the zapcore.Core interface so
// they can back a zap.Logger directly, without going through zap's own file
// or console encoders.
type appenderCore struct {
	appenders []Appender
	level     zapcore.Level
	fields    []zapcore.Field
}

// NewLogger constructs a Logger that fans every entry out to each of the
// given appenders, at or above minLevel. With no appenders, a stdout
// ConsoleAppender is used.
func NewLogger(minLevel zapcore.Level, appenders ...Appender) *Logger {
	if len(appenders) == 0 {
		appenders = []Appender{NewStdoutAppender()}
	}
	core := &appenderCore{appenders: appenders, level: minLevel}
	return &Logger{zap.New(core).Sugar()}
}

// NewTestLogger constructs a Logger suitable for use in tests: debug level,
// writing to stdout.
func NewTestLogger() *Logger {
	return NewLogger(zapcore.DebugLevel)
}

// Named returns a child Logger whose entries are tagged with the given
// name, appended to any existing name via zap's "." convention.
func (l *Logger) Named(name string) *Logger {
	return &Logger{l.SugaredLogger.Named(name)}
}

func (c *appenderCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.level
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &appenderCore{appenders: c.appenders, level: c.level, fields: merged}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	var firstErr error
	for _, a := range c.appenders {
		if err := a.Write(entry, all); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *appenderCore) Sync() error {
	var firstErr error
	for _, a := range c.appenders {
		if err := a.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
