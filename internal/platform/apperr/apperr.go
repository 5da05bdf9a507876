// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the catalog.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: The closed set of catalog error kinds (identifier, vocabulary,
    checksum, arity, editgroup and not-found failures) plus boundary errors.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the catalog API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Catalog Taxonomy (4xx)

// InvalidFatcatID creates a 400 [AppError] for a malformed public identifier.
func InvalidFatcatID(value string) *AppError {
	return &AppError{
		Code:       "INVALID_FATCAT_ID",
		Message:    fmt.Sprintf("invalid catalog identifier: %q", value),
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedExternalID creates a 400 [AppError] for an external identifier
// that fails its syntax rule (DOI, ORCID, ISSN-L, PMID, PMCID, QID, ISBN-13).
func MalformedExternalID(msg string) *AppError {
	return &AppError{
		Code:       "MALFORMED_EXTERNAL_ID",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedChecksum creates a 400 [AppError] for a hash or check digit that
// does not verify (MD5, SHA-1, SHA-256, ISBN-13 check digit).
func MalformedChecksum(msg string) *AppError {
	return &AppError{
		Code:       "MALFORMED_CHECKSUM",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotInControlledVocabulary creates a 400 [AppError] for a value outside a
// fixed vocabulary (release_type, contrib role).
func NotInControlledVocabulary(msg string) *AppError {
	return &AppError{
		Code:       "NOT_IN_CONTROLLED_VOCABULARY",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingOrMultipleExternalID creates a 400 [AppError] for a lookup that was
// given zero or more than one external identifier.
func MissingOrMultipleExternalID() *AppError {
	return &AppError{
		Code:       "MISSING_OR_MULTIPLE_EXTERNAL_ID",
		Message:    "exactly one external identifier must be supplied",
		HTTPStatus: http.StatusBadRequest,
	}
}

// EditgroupAlreadyAccepted creates a 400 [AppError] for operations against an
// editgroup that already has a changelog entry.
func EditgroupAlreadyAccepted(editgroupID string) *AppError {
	return &AppError{
		Code:       "EDITGROUP_ALREADY_ACCEPTED",
		Message:    fmt.Sprintf("editgroup %s was already accepted", editgroupID),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("release") // Returns "release not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// BadRequest creates a 400 [AppError] for malformed requests that fit no
// more specific kind (invalid UUID, constraint violation, oversize batch).
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Boundary Errors (4xx)

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
