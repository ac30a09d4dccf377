// Package httpapi exposes the REST API consumed by the CLI client. All
// error responses share one envelope: a top-level message plus, for
// validation failures, a per-field errors map.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishimitre/krishimitre/internal/common"
	"github.com/krishimitre/krishimitre/internal/server/services"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

func writeValidation(w http.ResponseWriter, fieldErrors map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// writeServiceError maps service-layer sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailTaken):
		writeMessage(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Farmer not found")
	case errors.Is(err, services.ErrModelUnavailable):
		writeMessage(w, http.StatusBadGateway, "Model service unavailable")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
