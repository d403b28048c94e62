package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs every completed request with method, URL, status, size, and
// duration, at a level matching the status class.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}

		start := time.Now()
		defer func() {
			msg := fmt.Sprintf("HTTP %s %s://%s%s - %d %dB in %s",
				r.Method,
				scheme,
				r.Host,
				r.RequestURI,
				ww.Status(),
				ww.BytesWritten(),
				time.Since(start),
			)
			l := slog.With(
				slog.String("method", r.Method),
				slog.String("url", fmt.Sprintf("%s://%s%s", scheme, r.Host, r.RequestURI)),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)

			switch {
			case ww.Status() >= 500:
				l.ErrorContext(r.Context(), msg)
			case ww.Status() >= 400:
				l.WarnContext(r.Context(), msg)
			default:
				l.InfoContext(r.Context(), msg)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
