package pipeline

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildvault/pybuild/pkg/types"
)

// HTTPEntry provides the mountpoint for this service into the shared
// webserver routing tree.
func (p *Pipeline) HTTPEntry() chi.Router {
	r := chi.NewRouter()

	r.Post("/build", p.httpBuild)

	return r
}

func (p *Pipeline) httpBuild(w http.ResponseWriter, r *http.Request) {
	var req types.BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, err, http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, err, http.StatusBadRequest)
		return
	}

	res, err := p.Build(r.Context(), req)
	if err != nil {
		jsonError(w, err, http.StatusInternalServerError)
		return
	}

	enc := json.NewEncoder(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc.Encode(res.BuildResult)
}

func jsonError(w http.ResponseWriter, err error, code int) {
	enc := json.NewEncoder(w)
	w.WriteHeader(code)
	out := struct {
		Error string
	}{
		Error: err.Error(),
	}
	enc.Encode(out)
}
