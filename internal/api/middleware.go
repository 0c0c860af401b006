package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RequestLoggingMiddleware logs the start and completion of every request.
func (s *Server) RequestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		s.logger.Debug("request_start",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_ip", r.RemoteAddr),
		)

		next.ServeHTTP(ww, r)

		s.logger.Info("request_completed",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// corsHandler allows the configured origins. Any other origin is answered
// with the fallback origin, which browsers will then refuse.
func corsHandler(allowed []string, fallback string, maxAge int) func(http.Handler) http.Handler {
	allowAll := slices.Contains(allowed, "*")
	inner := cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"X-Cache", "X-Request-Id", "X-Engine-Version"},
		AllowCredentials: false,
		MaxAge:           maxAge,
	})

	return func(next http.Handler) http.Handler {
		h := inner(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if fallback != "" && !allowAll && !slices.Contains(allowed, origin) {
				w.Header().Set("Access-Control-Allow-Origin", fallback)
				w.Header().Add("Vary", "Origin")
			}
			h.ServeHTTP(w, r)
		})
	}
}
