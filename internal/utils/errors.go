package utils

import (
	"errors"
	"net/http"
)

/*
   Sentinel errors for CRM domain logic.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidPhone     = errors.New("invalid_phone")
	ErrDuplicateContact = errors.New("duplicate_contact")
	ErrDuplicate        = errors.New("duplicate_key")
	ErrNotFound         = errors.New("not_found")
	ErrForbiddenOrg     = errors.New("forbidden_organization")
	ErrDomainConflict   = errors.New("domain_conflict")

	// For external service failures (SendGrid, S3, hosting provider)
	ErrExternalServiceFailure = errors.New("external_service_failure")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// FieldErrors maps a field path to a human-readable violation message.
type FieldErrors map[string]string

/*
   ValidationError carries field-level violations detected before any
   write. The controller echoes Fields back to the caller.
*/
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation_error"
}

func NewValidationError(fields FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to service-layer errors.
func HandleAppError(w http.ResponseWriter, err error) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidation,
			"One or more fields are invalid", valErr.Fields, err)
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Record not found", nil, err)
	case errors.Is(err, ErrDuplicateContact):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict,
			"A client with this phone number or email already exists", nil, err)
	case errors.Is(err, ErrDuplicate):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict,
			"A record with this unique value already exists", nil, err)
	case errors.Is(err, ErrDomainConflict):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict,
			"This domain is already in use elsewhere", nil, err)
	case errors.Is(err, ErrExternalServiceFailure):
		RespondErrorWithCode(w, http.StatusBadGateway, ErrCodeExternalServiceFailure,
			"An upstream service is unavailable", nil, err)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal,
			"An unexpected error occurred", nil, err)
	}
}
