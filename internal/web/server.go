package web

import (
	_ "embed"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static/index.html
var indexHTML []byte

// Server serves a browser terminal that runs the dashboard against apiAddr.
type Server struct {
	addr    string
	apiAddr string
	router  chi.Router
	log     *slog.Logger

	// executable is the binary started under each terminal's pty.
	executable func() (string, error)
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates a web terminal server. Each terminal session runs
// "<self> tui --server apiAddr".
func NewServer(addr, apiAddr string, opts ...Option) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:       addr,
		apiAddr:    apiAddr,
		router:     r,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		executable: os.Executable,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return s
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// tuiArgs are the arguments passed to the executable for one session.
func (s *Server) tuiArgs() []string {
	return []string{"tui", "--server", s.apiAddr}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the web terminal server.
func (s *Server) ListenAndServe() error {
	log.Printf("web terminal listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}
