package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cunyswap/cunyswap-backend/pkg/env"
)

// Setup builds the process-wide logger for the given mode and returns it
// together with a cleanup func that closes any open log file. Test and local
// modes log human-readable text; dev and prod log JSON.
func Setup(mode env.Mode, logPath string) (*slog.Logger, func()) {
	out := io.Writer(os.Stdout)
	cleanup := func() {}

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = io.MultiWriter(os.Stdout, f)
				cleanup = func() { _ = f.Close() }
			}
		}
	}

	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Dev, env.Prod:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler), cleanup
}
