package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error     string   `json:"error"`
	Available []string `json:"available,omitempty"`
}

type sqlResponse struct {
	SQL string `json:"sql"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSQL(w http.ResponseWriter, stmt string) {
	writeJSON(w, http.StatusOK, sqlResponse{SQL: stmt})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeDriverError maps driver errors to status codes.
func writeDriverError(w http.ResponseWriter, err error) {
	var unknown *driver.UnknownDriverError
	switch {
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Available: unknown.Available})
	case errors.Is(err, driver.ErrUnsupported):
		writeError(w, http.StatusNotImplemented, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
