package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or failed authentication. Handlers must
// surface it without detailing which check failed.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTokenReuse indicates a refresh token that no longer matches the stored
// current token for the identity. It unwraps to ErrUnauthorized so the
// externally visible status stays 401.
var ErrTokenReuse = &wrappedError{msg: "token reuse detected", wrapped: ErrUnauthorized}

// ErrInternal indicates a hashing, signing or storage failure.
var ErrInternal = errors.New("internal error")

type wrappedError struct {
	msg     string
	wrapped error
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.wrapped }
