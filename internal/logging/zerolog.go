package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// parseZerologLevel maps the configured logLevel onto zerolog levels.
func parseZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZerolog builds the structured logger used by the storage managers.
// The file receives console-formatted lines without colors; every non-nil
// sink additionally receives raw JSON events (e.g. a GELF writer).
func NewZerolog(file io.Writer, level string, sinks ...io.Writer) zerolog.Logger {
	writers := make([]io.Writer, 0, len(sinks)+1)
	if file == nil {
		file = osStdout
	}
	writers = append(writers, zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
	for _, s := range sinks {
		if s != nil {
			writers = append(writers, s)
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseZerologLevel(level)).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// NewGraylogWriter opens a GELF UDP writer for the given host:port.
func NewGraylogWriter(address string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("connecting to graylog at %s: %w", address, err)
	}
	w.Facility = ServiceName
	return w, nil
}
