// Log sink helpers: level control plus console/file writer construction.
// The package only shapes what is written and with which fields; sinks are
// plain zerolog writers the application owns.
package apiexception

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetLogLevel configures the global zerolog level from a string. Supported
// values (case-insensitive): debug, info, warn, error, fatal, panic.
// An unrecognized value is a configuration error.
func SetLogLevel(lvl string) error {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		return fmt.Errorf("apiexception: unknown log level %q", lvl)
	}
	return nil
}

// NewLogger builds a zerolog logger writing to the console and, when
// filePath is non-empty, to that file as well (created or appended). With
// pretty set the console side uses zerolog's human-readable writer; the file
// side always receives JSON lines.
//
//	lg, err := apiexception.NewLogger("debug", true, "api_errors.log")
//	cfg := apiexception.DefaultConfig()
//	cfg.Logger = &lg
func NewLogger(level string, pretty bool, filePath string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("apiexception: parse log level: %w", err)
	}

	var console io.Writer = os.Stderr
	if pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	writer := console
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("apiexception: open log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(console, f)
	}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger(), nil
}
