package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// DefaultFailureMessage is shown when the backend gives no message of its own.
const DefaultFailureMessage = "Request failed. Please try again."

// MapStatus maps a non-2xx backend status and optional backend message to an AppError.
// It handles the statuses the content backend uses:
// - 404 → NotFound
// - 400, 409, 422 → Validation
// - 401 → Unauthorized
// - anything else → Upstream
func MapStatus(status int, message string) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = DefaultFailureMessage
	}

	switch status {
	case http.StatusNotFound:
		return &AppError{Code: ErrCodeNotFound, Message: msg, Status: status}
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &AppError{Code: ErrCodeValidation, Message: msg, Status: status}
	case http.StatusUnauthorized:
		return &AppError{Code: ErrCodeUnauthorized, Message: msg, Status: status}
	default:
		return Upstream(status, msg)
	}
}

// MapTransportError maps errors returned while dispatching a backend request.
// Context timeouts and cancellations keep their own codes; everything else is Unavailable.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	return Unavailable(err)
}
