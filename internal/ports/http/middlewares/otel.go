package middlewares

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OTel wraps the handler in an otelhttp server span named from the request.
func OTel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		otelhttp.NewHandler(next, name).ServeHTTP(w, r)
	})
}
