package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type apiError struct {
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := apiResponse{
		Error: &apiError{Message: message},
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// decodeJSON parses and validates a request body into v. The caller
// responds 400 with the returned error's message.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("invalid request body")
	}

	err = validate.Struct(v)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("field %q failed validation (%s)", field.Field(), field.Tag())
		}
		return err
	}

	return nil
}

// respondServiceError maps service and repository sentinels onto HTTP
// statuses. Forbidden responses are deliberately uniform so ownership
// details never leak to the caller.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")

	// Transition requests outside the lifecycle table are denials, not
	// validation slips: the caller asked for a move nobody may make.
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrCauseNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrFileNotFound),
		errors.Is(err, service.ErrPageNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrCauseClosed):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidUrgency),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrTaskNotCompleted),
		errors.Is(err, service.ErrCannotOptOut),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrNotVerified):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
