package collab

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssetOwnership implements port.AssetOwnership over the assets table.
type AssetOwnership struct {
	pool *pgxpool.Pool
}

// NewAssetOwnership returns a new ownership resolver.
func NewAssetOwnership(pool *pgxpool.Pool) *AssetOwnership {
	return &AssetOwnership{pool: pool}
}

// OwnerOf returns the current holder of the asset, "" when the asset is
// unknown.
func (a *AssetOwnership) OwnerOf(ctx context.Context, assetID int64) (string, error) {
	var holder string
	err := a.pool.QueryRow(ctx, `SELECT holder FROM assets WHERE id = $1`, assetID).Scan(&holder)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return holder, nil
}
