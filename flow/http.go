package flow

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

const maxResultSize = 1 << 20

// NewHandler exposes POST /flow/{id}/result; the request body is the flow
// result payload and an empty body reports a flow that produced no data.
func NewHandler(correlator *Correlator) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/flow/{id}/result", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		body, err := io.ReadAll(io.LimitReader(r.Body, maxResultSize))
		if err != nil {
			http.Error(w, "failed to read result", http.StatusBadRequest)
			return
		}
		var payload *string
		if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
			value := string(trimmed)
			payload = &value
		}
		if !correlator.Deliver(id, payload) {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)
	return router
}
