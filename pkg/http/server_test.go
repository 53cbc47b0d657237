package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRoutes(t *testing.T) {
	s, err := New(hclog.NewNullLogger())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "pong")
	})
	s.Mount("/api/v1", r)

	srv := httptest.NewServer(s.r)
	defer srv.Close()

	for path, want := range map[string]int{
		"/healthz":     http.StatusOK,
		"/":            http.StatusOK,
		"/api/v1/ping": http.StatusOK,
		"/nope":        http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, "path %s", path)
	}

	resp, err := http.Get(srv.URL + "/api/v1/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))
}

func TestServerShutdown(t *testing.T) {
	s, err := New(hclog.NewNullLogger())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- s.Serve("127.0.0.1:0")
	}()

	require.NoError(t, s.Shutdown(context.Background()))
	assert.ErrorIs(t, <-done, http.ErrServerClosed)
}
