// Package logging sets up the zerolog logger shared by the CLI and viewer.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level; unknown names mean info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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

// Setup builds a timestamped console logger writing to w (stderr if nil)
func Setup(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}

	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}
