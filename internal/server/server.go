package server

import (
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simonvc/ratedash/internal/cache"
	"github.com/simonvc/ratedash/internal/metrics"
	"github.com/simonvc/ratedash/internal/store"
)

const DefaultCacheTTL = 5 * time.Minute

type Server struct {
	store    *store.Store
	router   chi.Router
	addr     string
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithCache serves repeated GETs from c for ttl. Without it every request
// reads the store.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func New(st *store.Store, addr string, opts ...Option) *Server {
	s := &Server{
		store:    st,
		addr:     addr,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware)
	s.router = r

	r.Handle("/metrics", promhttp.Handler())

	// The cache sits on each route so hits are labelled with their pattern.
	r.Route("/api", func(r chi.Router) {
		r.Route("/exchange-rates", func(r chi.Router) {
			r.With(s.cached).Get("/latest/", s.latestRates)
			r.With(s.cached).Get("/previous/", s.previousRates)
			r.With(s.cached).Get("/convert/", s.convert)
			r.With(s.cached).Get("/historical/", s.historical)
		})

		r.With(s.cached).Get("/currencies/codes_and_names/", s.codesAndNames)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	log.Printf("ratedash server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	log.Printf("ratedash server listening on %s", ln.Addr())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
