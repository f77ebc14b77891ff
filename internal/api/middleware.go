package api

import (
	"net/http"
	"time"

	"github.com/circulens/circulens/internal/logging"
)

// requestIDHeader carries the request correlation ID in both directions. A
// client-supplied value is honoured; otherwise a fresh ULID is generated.
const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware attaches a request-scoped logger and correlation ID to
// the context, caps the request body, and logs one line per request.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)

		log := s.log.With().Str("request_id", requestID).Logger()
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.WithContext(ctx, log)

		if s.cfg.Server.MaxRequestBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestBytes)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
