package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopcart/shopcart/internal/apperr"
	"github.com/shopcart/shopcart/internal/handler/dto"
)

// errorCodes maps failure kinds to stable API error codes.
var errorCodes = map[apperr.Kind]string{
	apperr.BadRequest: "BAD_REQUEST",
	apperr.NotFound:   "NOT_FOUND",
	apperr.Forbidden:  "FORBIDDEN",
	apperr.Conflict:   "CONFLICT",
	apperr.Internal:   "INTERNAL_ERROR",
}

// statusForKind maps failure kinds to HTTP status codes.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.BadRequest:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the single translation point for service failures.
// Classified errors pass through with their caller-safe message;
// anything else is logged and converted to a generic 500 so internal
// detail never reaches the caller.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.Internal {
		writeError(w, statusForKind(appErr.Kind), errorCodes[appErr.Kind], appErr.Message)
		return
	}

	logger.Error("internal_error", "error", err)
	writeError(w, http.StatusInternalServerError, errorCodes[apperr.Internal], "An internal error occurred")
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
