package port

import (
	"context"
	"time"
)

// Ledger custodies funds. The engine never holds tokens itself: it only
// decides how much to move and asks the ledger to move it. All amounts
// are integer currency units.
type Ledger interface {
	// Collect pulls amount from payer into the engine escrow and
	// returns the confirmed amount.
	Collect(ctx context.Context, payer string, amount int64, currency string) (int64, error)
	// Transfer pays amount out of the engine escrow to the recipient
	// and returns the confirmed amount.
	Transfer(ctx context.Context, to string, amount int64, currency string) (int64, error)
	// Approve grants spender an allowance against the engine escrow.
	Approve(ctx context.Context, spender string, amount int64, currency string) error
	// Reserve earmarks amount for spender so it can be spent through
	// the normal payment path.
	Reserve(ctx context.Context, spender string, amount int64, currency string) error
	// GetBalance returns the ledger balance of an account.
	GetBalance(ctx context.Context, account string, currency string) (int64, error)
}

// AttestationProvider issues and verifies license proofs. Ids are
// provider-scoped positive integers; 0 never identifies a real
// attestation.
type AttestationProvider interface {
	// Attest issues one attestation per recipient, all sharing the
	// same expiry and payload, and returns the ids in recipient order.
	Attest(ctx context.Context, recipients []string, expiresAt time.Time, data []byte) ([]int64, error)
	// Verify reports whether the attestation exists, belongs to the
	// recipient, was issued by this provider and has not expired.
	Verify(ctx context.Context, id int64, recipient string) (bool, error)
	// GetName returns the provider's display name.
	GetName() string
	// GetAddress returns the provider's account identity.
	GetAddress() string
}

// AssetOwnership resolves an asset id to its current holder.
type AssetOwnership interface {
	OwnerOf(ctx context.Context, assetID int64) (string, error)
}
