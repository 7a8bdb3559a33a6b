package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewZerolog builds the logger used by the database layer. It writes to the
// same destination as the slog handlers so one session has one log.
func NewZerolog(w io.Writer, level string, component string) zerolog.Logger {
	return zerolog.New(w).
		Level(parseZerologLevel(level)).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func parseZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
