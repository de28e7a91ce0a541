package api

import (
	"encoding/json"
	"net/http"
)

// Error is the uniform error envelope: {"detail": "<message>"}.
type Error struct {
	Detail string `json:"detail"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes an error response in the detail envelope.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, Error{Detail: detail})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusBadRequest, detail)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusUnauthorized, detail)
}

// writeForbidden writes a 403 error response.
func writeForbidden(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusForbidden, detail)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusNotFound, detail)
}

// writeInternalError writes a 500 error response. The detail must be a
// generic message; the real error belongs in the server log only.
func writeInternalError(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusInternalServerError, detail)
}
