package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"jokes-fetcher/pkg/logger"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Debug("HTTP request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Duration("took", time.Since(start)),
			logger.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
