package logging

import "github.com/rs/zerolog"

// DispatcherLogger adapts a zerolog.Logger to dispatcher.Logger. Entries are
// tagged component=dispatcher.
type DispatcherLogger struct {
	logger zerolog.Logger
}

// NewDispatcherLogger wraps logger.
func NewDispatcherLogger(logger zerolog.Logger) *DispatcherLogger {
	return &DispatcherLogger{
		logger: logger.With().Str("component", "dispatcher").Logger(),
	}
}

func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	l.log(l.logger.Debug(), msg, keysAndValues)
}

func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	l.log(l.logger.Info(), msg, keysAndValues)
}

func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	l.log(l.logger.Error(), msg, keysAndValues)
}

// log attaches key/value pairs; a trailing key without a value is dropped
// by zerolog.
func (l *DispatcherLogger) log(e *zerolog.Event, msg string, kv []any) {
	e.Fields(kv).Msg(msg)
}
