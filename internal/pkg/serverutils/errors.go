package serverutils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code
// without inspecting backend-specific error values.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindRemote
	KindStorage
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewRemoteError(message string, err error) *AppError {
	return &AppError{Kind: KindRemote, Message: message, Err: err}
}

func NewStorageError(message string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
