package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the marketplace domain. The taxonomy
// maps onto transport responses as: NotFound -> 404, NotAuthorized -> 403,
// InvalidState/InvalidInput -> 400, AlreadyReviewed -> 409.

// ErrNotFound wraps a repository miss (e.g. gorm.ErrRecordNotFound) into 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrNotAuthorized means the caller is not the required party for the
// operation (wrong customer, wrong worker), as opposed to not logged in.
func ErrNotAuthorized(domain, message string) *AppError {
	return New(CodeForbidden, domain, message, http.StatusForbidden)
}

// ErrInvalidState means the operation is not legal in the record's current
// status or percentage slot.
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

func ErrInvalidInput(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Reviews ---

var ErrAlreadyReviewed = New(
	CodeAlreadyExists,
	"review",
	"This side of the review has already been submitted",
	http.StatusConflict,
)

var ErrReviewNotEligible = New(
	CodeInvalidStatus,
	"review",
	"Engagement has not reached 100% approved progress",
	http.StatusBadRequest,
)

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
