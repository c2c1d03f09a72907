package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: ledger balances for a sponsor and a payer, a
// couple of holder packages, an asset, a campaign template and one
// bound campaign with an allocation and quota. Safe to run repeatedly.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	const currency = "USD"

	accounts := []struct {
		account string
		balance int64
	}{
		{"sponsor-demo", 1_000_000},
		{"payer-demo", 500_000},
		{"operator-demo", 0},
	}
	for _, a := range accounts {
		_, err := db.Exec(ctx, `INSERT INTO ledger_accounts (account, currency, balance)
VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, a.account, currency, a.balance)
		if err != nil {
			return err
		}
	}

	packages := []struct {
		holder    string
		unitPrice int64
	}{
		{"holder-demo", 100},
		{"holder-archive", 250},
	}
	for _, p := range packages {
		_, err := db.Exec(ctx, `INSERT INTO packages (holder, unit_price, currency, metadata_uri)
VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			p.holder, p.unitPrice, currency, "https://example.com/terms/"+p.holder)
		if err != nil {
			return err
		}
	}

	_, err := db.Exec(ctx, `INSERT INTO assets (id, holder) VALUES (1001, 'holder-demo') ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `INSERT INTO campaign_templates (id, currency, description, campaign)
VALUES ('tpl-standard', $1, 'standard sponsored-access campaign', true) ON CONFLICT DO NOTHING`, currency)
	if err != nil {
		return err
	}

	// One ready-to-run campaign bound to the demo sponsor and policy.
	expiresAt := time.Now().AddDate(0, 1, 0)
	_, err = db.Exec(ctx, `INSERT INTO campaigns
    (id, owner_account, policy, currency, description, expires_at, quota_limit, balance, paused)
VALUES ('campaign-demo', 'sponsor-demo', 'policy-demo', $1, 'demo campaign', $2, 5, 10000, false)
ON CONFLICT DO NOTHING`, currency, expiresAt)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO campaign_scopes (scope_id, sponsor, policy, campaign_id)
VALUES ('scope-demo', 'sponsor-demo', 'policy-demo', 'campaign-demo') ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO campaign_allocations (campaign_id, operator, amount)
VALUES ('campaign-demo', 'operator-demo', 500) ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}
	// The demo pool is backed by escrow funds so runs can reserve.
	_, err = db.Exec(ctx, `INSERT INTO ledger_accounts (account, currency, balance)
VALUES ('rights-engine-escrow', $1, 10000) ON CONFLICT DO NOTHING`, currency)
	return err
}
