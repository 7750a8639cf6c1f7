package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code. Handlers translate codes to
// HTTP statuses; services and the store only ever deal in codes.
type Code string

const (
	CodeMissingField       Code = "MISSING_FIELD"
	CodeInvalidReference   Code = "INVALID_REFERENCE"
	CodeDuplicateKey       Code = "DUPLICATE_KEY"
	CodeNotFound           Code = "NOT_FOUND"
	CodeLinkNotFound       Code = "LINK_NOT_FOUND"
	CodeInvalidRating      Code = "INVALID_RATING"
	CodeForbidden          Code = "FORBIDDEN"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// CodeStoreFailure marks infrastructure faults (lost connection, failed
	// transaction), as opposed to the expected conditions above.
	CodeStoreFailure Code = "STORE_FAILURE"
)

// Error is a typed, recoverable-by-caller error condition.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code, so sentinel-style comparisons work with
// errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// CodeOf extracts the code from an error, or CodeStoreFailure for anything
// that is not a typed *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStoreFailure
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Constructors

// MissingField reports a required request field that was absent.
func MissingField(field string) *Error {
	return &Error{Code: CodeMissingField, Message: fmt.Sprintf("missing required field: %s", field)}
}

// InvalidReference reports a relationship endpoint that does not exist.
func InvalidReference(kind, key string) *Error {
	return &Error{Code: CodeInvalidReference, Message: fmt.Sprintf("invalid %s: %s", kind, key)}
}

// DuplicateKey reports a uniqueness violation on creation.
func DuplicateKey(kind, key string) *Error {
	return &Error{Code: CodeDuplicateKey, Message: fmt.Sprintf("%s already exists: %s", kind, key)}
}

// NotFound reports a lookup or mutation of a nonexistent entity.
func NotFound(kind, key string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", kind, key)}
}

// LinkNotFound reports removal of an absent relationship link.
func LinkNotFound(kind, owner, member string) *Error {
	return &Error{Code: CodeLinkNotFound, Message: fmt.Sprintf("%s link not found: %s -> %s", kind, owner, member)}
}

// InvalidRating reports a rating outside the allowed bounds.
func InvalidRating(rating int) *Error {
	return &Error{Code: CodeInvalidRating, Message: fmt.Sprintf("invalid rating: %d (must be between 0 and 10)", rating)}
}

// Forbidden reports an operation the caller does not own.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// InvalidCredentials reports a failed login without revealing which of
// identifier or password was wrong.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "invalid username/email or password"}
}

// StoreFailure wraps an infrastructure fault from the underlying store.
func StoreFailure(operation string, cause error) *Error {
	return &Error{Code: CodeStoreFailure, Message: fmt.Sprintf("store operation failed: %s", operation), Err: cause}
}
