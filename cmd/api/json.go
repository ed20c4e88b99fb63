package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &response.ErrorResponse{Error: message})

}

// writeError picks the status from the error kind and echoes the kind.
func writeError(w http.ResponseWriter, message string, err error) error {
	kind := types.KindOf(err)
	return writeJSON(w, errorStatus(err), &response.ErrorResponse{
		Error: message + ": " + err.Error(),
		Kind:  string(kind),
	})
}

func errorStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, siciap.ErrInvalidParams) {
		return http.StatusBadRequest
	}
	switch types.KindOf(err) {
	case types.KindUnreadableInput, types.KindSchemaMismatch:
		return http.StatusUnprocessableEntity
	case types.KindConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(data)
}
