package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/simonvc/ratedash/internal/metrics"
)

type ctxKey int

const requestIDKey ctxKey = iota

const requestIDHeader = "X-Request-Id"

// requestID tags every request with a UUID, reusing one sent by the caller.
// chi's middleware.RequestID mints host-prefixed counters and never echoes
// the ID in a response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.Must(uuid.NewV7()).String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// cachedWriter buffers a response so a 200 can be stored after it is sent.
type cachedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *cachedWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *cachedWriter) Write(p []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	cw.buf.Write(p)
	return cw.ResponseWriter.Write(p)
}

// cached answers GETs from the response cache, keyed by path and query.
// Only successful responses are stored. Cache errors fall through to the
// handler.
func (s *Server) cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cache == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path + "?" + r.URL.Query().Encode()
		body, ok, err := s.cache.Get(r.Context(), key)
		if err != nil {
			s.log.Warn("cache get failed", "key", key, "err", err)
		}
		if ok {
			metrics.CacheHit()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(body)
			return
		}
		metrics.CacheMiss()

		w.Header().Set("X-Cache", "MISS")
		cw := &cachedWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)
		if cw.status != http.StatusOK {
			return
		}
		if err := s.cache.Set(r.Context(), key, cw.buf.Bytes(), s.cacheTTL); err != nil {
			s.log.Warn("cache set failed", "key", key, "err", err)
		}
	})
}
