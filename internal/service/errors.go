package service

import "errors"

// Invariant violations are expected, recoverable outcomes. Handlers compare
// with errors.Is and map them to 400/404 responses; they are never retried
// automatically and never masked as generic failures.
var (
	// ErrSessionAlreadyOpen: a tenant may have at most one open cash session.
	ErrSessionAlreadyOpen = errors.New("a cash session is already open")

	// ErrNoOpenSession: the operation requires an open cash session.
	ErrNoOpenSession = errors.New("no open cash session")

	// ErrSaleNotFound: the sale does not exist for this tenant.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrAlreadyRefunded: a sale can be refunded exactly once.
	ErrAlreadyRefunded = errors.New("sale already refunded")

	// ErrInvalidCredentials is returned on any login failure without
	// distinguishing unknown user from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
