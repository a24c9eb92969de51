package store

import (
	"errors"
	"fmt"
	"time"
)

var (
	// validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrWeakPassword = errors.New("password does not meet requirements")

	// conflict errors
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicatePortfolioName = errors.New("portfolio name already exists")
	ErrDuplicateSymbol        = errors.New("symbol already in portfolio")

	// auth errors
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")

	// portfolio errors
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrSymbolNotFound    = errors.New("symbol not found in portfolio")
)

// AccountLockedError rejects a login attempt while the lockout window is
// open. Until is when the account unlocks.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.Format(time.RFC3339))
}

// IsConflict reports whether err is one of the duplicate-resource errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicatePortfolioName) ||
		errors.Is(err, ErrDuplicateSymbol)
}
