package collab

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rights-engine/internal/core/domain"
)

// AttestationProvider implements port.AttestationProvider over the
// attestations table. Ids are bigserial, so 0 never collides with a
// real attestation.
type AttestationProvider struct {
	pool    *pgxpool.Pool
	name    string
	address string
}

// NewAttestationProvider returns a provider issuing under the given
// identity.
func NewAttestationProvider(pool *pgxpool.Pool, name, address string) *AttestationProvider {
	return &AttestationProvider{pool: pool, name: name, address: address}
}

// Attest issues one attestation per recipient, all sharing the expiry
// and payload, and returns ids in recipient order. The batch commits
// atomically.
func (p *AttestationProvider) Attest(ctx context.Context, recipients []string, expiresAt time.Time, data []byte) ([]int64, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("attest: %w", domain.ErrInvalidInput)
	}
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	ids := make([]int64, len(recipients))
	for i, recipient := range recipients {
		err = tx.QueryRow(ctx, `INSERT INTO attestations (recipient, issuer, expires_at, payload)
VALUES ($1, $2, $3, $4) RETURNING id`,
			recipient, p.address, expiresAt, data).Scan(&ids[i])
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Verify reports whether the attestation exists, belongs to the
// recipient, was issued by this provider and has not expired.
func (p *AttestationProvider) Verify(ctx context.Context, id int64, recipient string) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var (
		storedRecipient string
		issuer          string
		expiresAt       time.Time
	)
	err := p.pool.QueryRow(ctx,
		`SELECT recipient, issuer, expires_at FROM attestations WHERE id = $1`, id).
		Scan(&storedRecipient, &issuer, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if storedRecipient != recipient || issuer != p.address {
		return false, nil
	}
	return time.Now().Before(expiresAt), nil
}

// GetName returns the provider's display name.
func (p *AttestationProvider) GetName() string { return p.name }

// GetAddress returns the provider's issuer identity.
func (p *AttestationProvider) GetAddress() string { return p.address }
