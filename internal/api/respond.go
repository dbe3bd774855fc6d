package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Readiness/internal/scoring"
	"github.com/MikeSquared-Agency/Readiness/internal/store"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type errorResponse struct {
	Error      string             `json:"error"`
	Details    string             `json:"details"`
	Violations []survey.Violation `json:"violations,omitempty"`
	Status     string             `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details, Status: statusError})
}

// errorKind labels a failure for metrics and events.
type errorKind string

const (
	kindMalformed   errorKind = "malformed"
	kindValidation  errorKind = "validation"
	kindCatalog     errorKind = "catalog"
	kindPersistence errorKind = "persistence"
	kindInternal    errorKind = "internal"
)

// classify maps a domain error onto its kind, HTTP status and envelope.
func classify(err error) (errorKind, int, errorResponse) {
	var malformed *survey.MalformedRequestError
	var invalid *survey.ValidationError
	switch {
	case errors.As(err, &malformed):
		return kindMalformed, http.StatusBadRequest, errorResponse{
			Error: "malformed request", Details: malformed.Reason, Status: statusError,
		}
	case errors.As(err, &invalid):
		return kindValidation, http.StatusBadRequest, errorResponse{
			Error: "validation failed", Details: invalid.Error(),
			Violations: invalid.Violations, Status: statusError,
		}
	case errors.Is(err, scoring.ErrCatalogLookup):
		return kindCatalog, http.StatusBadGateway, errorResponse{
			Error: "recommendation lookup failed", Details: err.Error(), Status: statusError,
		}
	case errors.Is(err, store.ErrPersistence):
		return kindPersistence, http.StatusInternalServerError, errorResponse{
			Error: "failed to store assessment", Details: err.Error(), Status: statusError,
		}
	default:
		return kindInternal, http.StatusInternalServerError, errorResponse{
			Error: "internal error", Details: err.Error(), Status: statusError,
		}
	}
}
