package domain

import "errors"

// Sentinel errors for the engine. Handlers map these onto HTTP status
// codes and callers test them with errors.Is. Wrapping with fmt.Errorf
// ("%w") is expected to add call-site context.
var (
	// ErrInvalidInput covers zero amounts, empty party lists, missing
	// accounts and below-minimum expiration offsets.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSetup is returned when a package is configured with a
	// zero unit price.
	ErrInvalidSetup = errors.New("invalid package setup")

	// ErrNotConfigured is returned when an operation requires a holder
	// package that was never set up.
	ErrNotConfigured = errors.New("package not configured")

	// ErrInsufficientFunds covers overdrafts: removing more than the
	// campaign balance, allocating above the balance, or an agreement
	// whose paid amount does not cover the exact total.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized is returned when the caller lacks the required
	// role or does not own the touched resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInactiveCampaign is returned by Run when the active predicate
	// does not hold for the (operator, account) pair: no allocation,
	// balance below allocation, quota exhausted, paused, or expired.
	ErrInactiveCampaign = errors.New("campaign not active for operator")

	// ErrUnsupportedOperation is returned when criteria cannot be
	// resolved to a holder.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrNotFound is returned for lookups of absent campaigns,
	// templates or agreements.
	ErrNotFound = errors.New("not found")
)
