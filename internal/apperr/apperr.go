// Package apperr defines the error taxonomy shared by all core operations.
// Services wrap these sentinels with %w so handlers can map a failure class
// to an HTTP status with errors.Is, while the message stays human-readable.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers bad or missing input: out-of-range amounts,
	// unknown currencies, malformed identifiers. Nothing is mutated.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers unknown user/agent/deposit/withdrawal ids.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers already-processed approvals, already-claimed
	// rewards and duplicate pending transaction ids.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientFunds is returned before any balance is touched.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrFraud is a rejection that deliberately mutates state: the fraud
	// record is appended, and the ban flag may flip, before it is returned.
	ErrFraud = errors.New("fraud detected")
	// ErrBanned rejects any operation for a banned account; checked before
	// all other validation on wager, deposit and withdrawal paths.
	ErrBanned = errors.New("account is banned")
	// ErrStorage signals an exhausted read/write retry budget. Any
	// partially computed in-memory mutation is discarded.
	ErrStorage = errors.New("storage failure")
)

// Validationf wraps ErrValidation with a reason string.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

func InsufficientFundsf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInsufficientFunds}, args...)...)
}

func Fraudf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFraud}, args...)...)
}

func Bannedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBanned}, args...)...)
}

func Storagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrStorage}, args...)...)
}

// HTTPStatus maps a failure class to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientFunds):
		return 400
	case errors.Is(err, ErrBanned), errors.Is(err, ErrFraud):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	}
	return 500
}

// Reason strips the sentinel prefix from a wrapped error, leaving the
// user-visible reason string. Falls back to the full message.
func Reason(err error) string {
	for _, sentinel := range []error{
		ErrValidation, ErrNotFound, ErrConflict,
		ErrInsufficientFunds, ErrFraud, ErrBanned, ErrStorage,
	} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
