package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"notesai/internal/common"
	"notesai/pkg/logger"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

type ErrorBody struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// DecodeJSON reads a capped JSON body into v. On failure it writes 413 or 400
// and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, detail)
}

// FromError maps service errors onto status codes. Unknown errors are logged
// and reported as a generic 500 so driver messages never reach the client.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrConflict):
		Error(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrUnauthenticated):
		Unauthorized(w, "Could not validate credentials")
	case errors.Is(err, common.ErrNotFound):
		Error(w, http.StatusNotFound, "Note not found")
	default:
		logger.Sugar.Errorf("Unhandled error: %v", err)
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
