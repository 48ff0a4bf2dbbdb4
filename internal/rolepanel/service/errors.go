package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleProtected = errors.New("role is protected")
)

// TransactionError reports a mutation that was rolled back. Its message is
// the underlying failure so it can be shown to the operator as is.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string { return e.Err.Error() }
func (e *TransactionError) Unwrap() error { return e.Err }

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classify passes domain errors through untouched and wraps anything else
// that aborted a transaction.
func classify(op string, err error) error {
	var txErr *TransactionError
	switch {
	case errors.As(err, &txErr):
		return err
	case errors.Is(err, ErrValidation), errors.Is(err, ErrRoleNotFound), errors.Is(err, ErrRoleProtected):
		return err
	default:
		return &TransactionError{Op: op, Err: err}
	}
}
