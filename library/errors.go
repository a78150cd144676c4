package library

import "errors"

// Sentinel errors reported by the core. All of them are expected,
// recoverable conditions for the immediate caller; none is fatal.
var (
	// ErrNotFound means a referenced book or member id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoCopiesAvailable means an issue was requested with zero copies free.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrOverQuota means the member is already at their borrowing limit.
	ErrOverQuota = errors.New("borrowing limit reached")

	// ErrNoActiveLoan means a return was requested with no matching open transaction.
	ErrNoActiveLoan = errors.New("no active loan")

	// ErrInvalidInput means a constructor was given negative copy counts
	// or otherwise malformed values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoggedIn means a circulation operation was attempted without a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrForbidden means the session's role may not access the operation.
	ErrForbidden = errors.New("access denied")
)
