package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when no account has the requested number
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when creating an account whose number is taken
	ErrDuplicateAccount = errors.New("account number already exists")

	ErrInvalidAmount         = errors.New("amount cannot be negative")
	ErrInvalidHolderName     = errors.New("holder name must be a non-empty single line")
	ErrUnknownInterestPolicy = errors.New("unknown interest policy")

	// ErrIO marks failures to open, read or write persisted accounts
	ErrIO = errors.New("account storage I/O failed")

	// ErrParse marks malformed persisted account records
	ErrParse = errors.New("malformed account record")

	// ErrNoSavedData is returned by a store that has never been saved to
	ErrNoSavedData = errors.New("no saved accounts")
)

// ParseError describes a malformed record found while loading accounts
type ParseError struct {
	Line  int // 1-based line of the offending field, 0 when unknown
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s: %v", ErrParse, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
