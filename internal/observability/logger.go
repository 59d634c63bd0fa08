package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger for the given env. Records carry the
// trace and span ids of the active span when tracing is enabled.
func NewLogger(env string) *slog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
