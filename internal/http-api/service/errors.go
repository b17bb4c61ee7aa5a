package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateAccount = errors.New("username or email already in use")
	ErrDuplicateLike    = errors.New("like already recorded")
	ErrAuthentication   = errors.New("invalid credentials")
	ErrAuthorization    = errors.New("not permitted")
	ErrNotFound         = errors.New("not found")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrUpload           = errors.New("upload failed")
)

// ValidationError names the offending input field. errors.Is(err, ErrValidation)
// holds for every *ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
