// internal/app/system/httpx/respond.go
//
// Package httpx writes the JSON response envelope used by every API
// endpoint and maps domain errors onto HTTP statuses.
//
// Every response has the shape {"success": bool, "data": ...} or
// {"success": false, "error": "..."}.
package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a success envelope with the given status and payload.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Fail writes an error envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// BadRequest writes a 400 error envelope.
func BadRequest(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, "please authenticate")
}

// Forbidden writes a 403 error envelope.
func Forbidden(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusForbidden, msg)
}

// NotFound writes a 404 error envelope. Tenant-scoped lookups report
// cross-tenant resources with this same message so existence never
// leaks across organizations.
func NotFound(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusNotFound, msg)
}

// Conflict writes a 409 error envelope (duplicate identity, duplicate
// tag, already voted). Non-retryable without changed input.
func Conflict(w http.ResponseWriter, msg string) {
	Fail(w, http.StatusConflict, msg)
}

// ServerError logs err and writes a 503 envelope with no internal
// detail. Used for storage failures, which callers may retry with
// backoff.
func ServerError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error("storage error", zap.String("op", op), zap.Error(err))
	}
	Fail(w, http.StatusServiceUnavailable, "storage unavailable, retry later")
}

// Decode reads a JSON request body into dst. Unknown fields are
// tolerated; handlers whitelist fields explicitly where it matters.
func Decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	return dec.Decode(dst)
}

// maxBodySize bounds JSON request bodies (form definitions included).
const maxBodySize = 1 << 20 // 1 MB
