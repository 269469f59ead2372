package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/buildmode/internal/profile"
)

// Setup returns the process logger writing to stderr.
func Setup(inv profile.Invocation, p profile.Profile, debug bool) zerolog.Logger {
	return New(os.Stderr, inv, p, debug)
}

// New builds a logger for the resolved profile. Production builds log JSON at info
// level, development builds use the console writer. The debug flag lowers either to
// debug level. NO_COLOR in the invocation environment disables console colours.
func New(w io.Writer, inv profile.Invocation, p profile.Profile, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if p.IsProduction() {
		return zerolog.New(w).Level(level).With().Timestamp().Str("mode", p.String()).Logger()
	}

	_, noColor := inv.LookupEnv("NO_COLOR")

	out := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: noColor,
		FormatTimestamp: func(i any) string {
			return time.Now().Format(time.Kitchen)
		},
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("mode", p.String()).Logger()
}
