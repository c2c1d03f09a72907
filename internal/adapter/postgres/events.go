package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"rights-engine/internal/core/domain"
)

// insertEvent writes one audit record inside the caller's transaction.
func insertEvent(ctx context.Context, tx pgx.Tx, e domain.Event) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO events (id, kind, payload, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Kind, e.Payload, e.CreatedAt)
	return err
}
