package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
)

// New returns a server with request logging and a /healthz heartbeat
// already wired.  Services mount their routers below it.
func New(l hclog.Logger) (*Server, error) {
	s := Server{
		l: l.Named("http"),
		r: chi.NewRouter(),
		n: &http.Server{},
	}

	s.r.Use(middleware.Logger)
	s.r.Use(middleware.Heartbeat("/healthz"))

	s.r.Get("/", s.rootIndex)

	return &s, nil
}

// Serve binds to the given address and serves until Shutdown is
// called or the listener fails.
func (s *Server) Serve(bind string) error {
	s.l.Info("HTTP is starting")
	s.n.Addr = bind
	s.n.Handler = s.r
	return s.n.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.  An
// in-progress build keeps its request open until the pipeline
// returns, so the drain is bounded by the ctx supplied here.
func (s *Server) Shutdown(ctx context.Context) error {
	s.l.Info("HTTP is shutting down")
	return s.n.Shutdown(ctx)
}

func (s *Server) rootIndex(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "pybuild artifact builder; POST build requests below /api/v1")
}

// Mount attaches a service's routes below the given path.
func (s *Server) Mount(path string, router chi.Router) {
	s.r.Mount(path, router)
}
