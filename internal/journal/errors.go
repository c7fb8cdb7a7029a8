package journal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumericField    = errors.New("invalid numeric field")
	ErrInvalidDirection       = errors.New("direction must be long or short")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")
	ErrMissingSymbol          = errors.New("symbol is required")
	ErrInvalidResult          = errors.New("result filter must be all, win or loss")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrConfirmationRequired   = errors.New("clearing all trades requires confirmation")
	ErrNothingToExport        = errors.New("no trades to export")
)

// InvalidNumericFieldError reports the form field that failed to parse as a
// positive finite number.
type InvalidNumericFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidNumericFieldError) Error() string {
	return fmt.Sprintf("invalid numeric field %s: %q", e.Field, e.Value)
}

func (e *InvalidNumericFieldError) Is(target error) bool {
	return target == ErrInvalidNumericField
}

func (e *InvalidNumericFieldError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed save. The in-memory store still holds the
// change; callers should surface it as a warning.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: save trades: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceUnavailable
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsWarning reports whether err is non-fatal for the current action.
func IsWarning(err error) bool {
	return errors.Is(err, ErrPersistenceUnavailable)
}
