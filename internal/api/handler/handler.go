package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"net/http"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps domain errors to status codes. Bounds violations carry
// their rule name as the error code.
func respondError(w http.ResponseWriter, err error) {
	status, code, message, field := http.StatusInternalServerError, "internal_error", "An unexpected error occurred.", ""
	var boundsErr *apperrors.BoundsError
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &boundsErr):
		status, code, message, field = http.StatusUnprocessableEntity, string(boundsErr.Rule), boundsErr.Error(), boundsErr.Field
	case errors.Is(err, apperrors.ErrProductNotFound):
		status, code, message = http.StatusNotFound, "product_not_found", err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, "not_found", "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidProduct):
		code, message = "invalid_product", "The loan product is misconfigured."
		slog.Default().Error("Invalid loan product definition", "error", err)
	case errors.As(err, &validationError):
		status, code, message, field = http.StatusBadRequest, "invalid_argument", validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, "invalid_argument", err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "unauthorized", "Unauthorized"
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}
