package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rights-engine/internal/core/domain"
)

// PolicyRepository implements port.PolicyRepository using pgxpool.
type PolicyRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository returns a new repository instance.
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

// SavePackage upserts the holder's package. Re-setup overwrites price,
// currency and metadata in place.
func (r *PolicyRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO packages (holder, unit_price, currency, metadata_uri)
VALUES ($1, $2, $3, $4)
ON CONFLICT (holder) DO UPDATE SET
    unit_price = EXCLUDED.unit_price,
    currency = EXCLUDED.currency,
    metadata_uri = EXCLUDED.metadata_uri,
    updated_at = now()`,
		pkg.Holder, pkg.UnitPrice, pkg.Currency, pkg.MetadataURI)
	return err
}

// GetPackage returns the holder's package or nil when unconfigured.
func (r *PolicyRepository) GetPackage(ctx context.Context, holder string) (*domain.Package, error) {
	var pkg domain.Package
	err := r.pool.QueryRow(ctx,
		`SELECT holder, unit_price, currency, metadata_uri, created_at, updated_at FROM packages WHERE holder = $1`,
		holder).
		Scan(&pkg.Holder, &pkg.UnitPrice, &pkg.Currency, &pkg.MetadataURI, &pkg.CreatedAt, &pkg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetLicense returns the stored attestation id for the pair, 0 when
// absent.
func (r *PolicyRepository) GetLicense(ctx context.Context, account, holder string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT attestation_id FROM licenses WHERE account = $1 AND holder = $2`,
		account, holder).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NoLicense, nil
	}
	if err != nil {
		return domain.NoLicense, err
	}
	return id, nil
}

// SaveEnforcement records the agreement, the license upserts and the
// audit event in one serializable transaction.
func (r *PolicyRepository) SaveEnforcement(ctx context.Context, agr domain.Agreement, licenses []domain.License, event domain.Event) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `INSERT INTO agreements (id, total_paid, currency, parties, broker, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		agr.ID, agr.TotalPaid, agr.Currency, agr.Parties, agr.Broker, agr.Payload, agr.CreatedAt)
	if err != nil {
		return err
	}

	for _, lic := range licenses {
		_, err = tx.Exec(ctx, `INSERT INTO licenses (account, holder, attestation_id, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (account, holder) DO UPDATE SET
    attestation_id = EXCLUDED.attestation_id,
    updated_at = EXCLUDED.updated_at`,
			lic.Account, lic.Holder, lic.AttestationID, lic.UpdatedAt)
		if err != nil {
			return err
		}
	}

	err = insertEvent(ctx, tx, event)
	return err
}
