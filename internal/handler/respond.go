package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// apiResponse is the JSON envelope for both API endpoints.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, success bool, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: success, Message: message}); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// respondError maps a domain error code to an HTTP status and writes the
// user-facing message.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	case domain.ECONFLICT, domain.EUNAVAILABLE:
		status = http.StatusConflict
	}
	respondJSON(w, status, false, domain.ErrorMessage(err))
}
