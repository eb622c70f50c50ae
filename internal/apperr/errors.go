package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the error taxonomy. Callers match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrStorageWrite = errors.New("storage write failed")
)

func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func Conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

func StorageWrite(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrStorageWrite)
}
