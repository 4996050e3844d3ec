package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/service/auth"
	"github.com/hellenika/hellenika-api/internal/store"
	"github.com/hellenika/hellenika-api/internal/study"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, study.ErrActivityNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrUsernameTooShort),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, study.ErrNoWords),
		errors.Is(err, study.ErrMissingAnswer),
		errors.Is(err, study.ErrInvalidOption):
		return http.StatusBadRequest

	// Answering a finished session
	case errors.Is(err, study.ErrSessionNotActive):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrGroupNotFound):
		return "Group not found"

	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "No progress recorded for this word"

	case errors.Is(err, study.ErrActivityNotFound):
		return "Activity not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Name already taken"

	case errors.Is(err, study.ErrSessionNotActive):
		return "Session is already complete"

	// Bad request errors
	case errors.Is(err, study.ErrNoWords):
		return "No words available for this selection"

	case errors.Is(err, study.ErrMissingAnswer):
		return "Answer does not match the activity type"

	case errors.Is(err, study.ErrInvalidOption):
		return "Invalid option index"

	case errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrUsernameTooShort),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrEmptyUsername):
		return "Name must be 3-20 characters: letters, numbers, underscores"

	case errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyPassword):
		return "Password must be at least 6 characters"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "alphanum":
		return "invalid characters"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
