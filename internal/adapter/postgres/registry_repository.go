package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rights-engine/internal/core/domain"
)

// RegistryRepository implements port.RegistryRepository using pgxpool.
type RegistryRepository struct {
	pool *pgxpool.Pool
}

// NewRegistryRepository returns a new repository instance.
func NewRegistryRepository(pool *pgxpool.Pool) *RegistryRepository {
	return &RegistryRepository{pool: pool}
}

// GetTemplate returns the template, or nil when absent.
func (r *RegistryRepository) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	var tpl domain.Template
	err := r.pool.QueryRow(ctx,
		`SELECT id, currency, description, campaign, created_at FROM campaign_templates WHERE id = $1`, id).
		Scan(&tpl.ID, &tpl.Currency, &tpl.Description, &tpl.Campaign, &tpl.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// GetScopeCampaign returns the campaign id bound to (sponsor, policy),
// or "" when the scope was never created.
func (r *RegistryRepository) GetScopeCampaign(ctx context.Context, sponsor, policy string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT campaign_id FROM campaign_scopes WHERE sponsor = $1 AND policy = $2`, sponsor, policy).
		Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
