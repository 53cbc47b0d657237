package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
)

// Server owns the routing tree and the listener for the pybuild
// API.  Individual services contribute routes via Mount rather than
// holding listeners of their own.
type Server struct {
	l hclog.Logger
	r chi.Router

	n *http.Server
}
