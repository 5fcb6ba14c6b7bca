package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var untracedPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
}

func shouldTraceRequest(r *http.Request) bool {
	_, skip := untracedPaths[r.URL.Path]
	return !skip
}

// RequestIDMiddleware reuses a valid inbound X-Request-ID or assigns a new one,
// and echoes it in the response header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		requestID := RequestIDFromHeader(r.Header.Get(RequestIDHeader))
		ctx := ContextWithRequestID(r.Context(), requestID)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()

		ctx := r.Context()
		logger := LoggerWithTrace(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func TracingMiddleware(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "http_request", otelhttp.WithFilter(shouldTraceRequest))
}
