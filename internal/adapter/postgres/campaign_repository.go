package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rights-engine/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
// Every mutator runs a serializable transaction with the campaign row
// locked FOR UPDATE, so concurrent callers serialize on the campaign.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts the campaign, binds its scope (overwriting any prior
// binding for the pair) and records the registration event.
func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign, scope domain.Scope, event domain.Event) error {
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

	_, err = tx.Exec(ctx, `INSERT INTO campaigns
    (id, owner_account, policy, currency, description, expires_at, quota_limit, balance, paused, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, 0, false, $7, $7)`,
		c.ID, c.Owner, c.Policy, c.Currency, c.Description, c.ExpiresAt, c.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO campaign_scopes (scope_id, sponsor, policy, campaign_id, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (scope_id) DO UPDATE SET
    campaign_id = EXCLUDED.campaign_id,
    created_at = EXCLUDED.created_at`,
		scope.ID, scope.Sponsor, scope.Policy, scope.CampaignID, scope.CreatedAt)
	if err != nil {
		return err
	}

	err = insertEvent(ctx, tx, event)
	return err
}

// Get returns the campaign, or nil when absent.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, `SELECT id, owner_account, policy, currency, description, expires_at, quota_limit, balance, paused, created_at, updated_at
FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Owner, &c.Policy, &c.Currency, &c.Description, &c.ExpiresAt, &c.QuotaLimit, &c.Balance, &c.Paused, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllocation returns the operator's per-run allocation, 0 when none
// is set.
func (r *CampaignRepository) GetAllocation(ctx context.Context, campaignID, operator string) (int64, error) {
	var amount int64
	err := r.pool.QueryRow(ctx,
		`SELECT amount FROM campaign_allocations WHERE campaign_id = $1 AND operator = $2`,
		campaignID, operator).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// GetUsage returns the account's usage counter, 0 when the account
// never ran.
func (r *CampaignRepository) GetUsage(ctx context.Context, campaignID, account string) (int64, error) {
	var used int64
	err := r.pool.QueryRow(ctx,
		`SELECT used FROM campaign_usage WHERE campaign_id = $1 AND account = $2`,
		campaignID, account).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}

// AdjustBalance applies a signed delta to the pool balance and invokes
// settle inside the same transaction; a settle failure rolls the
// balance change back.
func (r *CampaignRepository) AdjustBalance(ctx context.Context, campaignID string, delta int64, event domain.Event, settle func(ctx context.Context) error) error {
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

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		return err
	}
	if err != nil {
		return err
	}
	if balance+delta < 0 {
		err = fmt.Errorf("campaign %s balance %d, requested %d: %w", campaignID, balance, -delta, domain.ErrInsufficientFunds)
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE campaigns SET balance = balance + $1, updated_at = now() WHERE id = $2`, delta, campaignID)
	if err != nil {
		return err
	}
	if err = insertEvent(ctx, tx, event); err != nil {
		return err
	}
	if settle != nil {
		err = settle(ctx)
	}
	return err
}

// SetQuotaLimit stores the per-account usage limit and the audit event.
func (r *CampaignRepository) SetQuotaLimit(ctx context.Context, campaignID string, limit int64, event domain.Event) error {
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

	tag, err := tx.Exec(ctx, `UPDATE campaigns SET quota_limit = $1, updated_at = now() WHERE id = $2`, limit, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		return err
	}
	err = insertEvent(ctx, tx, event)
	return err
}

// SetAllocation stores the operator's per-run allocation after checking
// it against the current balance under lock.
func (r *CampaignRepository) SetAllocation(ctx context.Context, campaignID, operator string, amount int64) error {
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

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		return err
	}
	if err != nil {
		return err
	}
	if amount > balance {
		err = fmt.Errorf("allocation %d above balance %d: %w", amount, balance, domain.ErrInsufficientFunds)
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO campaign_allocations (campaign_id, operator, amount)
VALUES ($1, $2, $3)
ON CONFLICT (campaign_id, operator) DO UPDATE SET amount = EXCLUDED.amount`,
		campaignID, operator, amount)
	return err
}

// SetPaused toggles the pause flag.
func (r *CampaignRepository) SetPaused(ctx context.Context, campaignID string, paused bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET paused = $1, updated_at = now() WHERE id = $2`, paused, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
	}
	return nil
}

// Run executes one sponsored access. The campaign row is locked first,
// the active predicate re-evaluated on the locked state, then usage is
// incremented and the allocation debited before the ledger reserve runs
// as the final step. Any failure aborts the whole transaction.
func (r *CampaignRepository) Run(ctx context.Context, campaignID, operator, account string, now time.Time, reserve func(ctx context.Context, amount int64) error) error {
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

	var c domain.Campaign
	err = tx.QueryRow(ctx, `SELECT id, owner_account, currency, expires_at, quota_limit, balance, paused
FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).
		Scan(&c.ID, &c.Owner, &c.Currency, &c.ExpiresAt, &c.QuotaLimit, &c.Balance, &c.Paused)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
		return err
	}
	if err != nil {
		return err
	}

	var allocation int64
	err = tx.QueryRow(ctx, `SELECT amount FROM campaign_allocations WHERE campaign_id = $1 AND operator = $2`,
		campaignID, operator).Scan(&allocation)
	if errors.Is(err, pgx.ErrNoRows) {
		allocation, err = 0, nil
	}
	if err != nil {
		return err
	}

	var used int64
	err = tx.QueryRow(ctx, `SELECT used FROM campaign_usage WHERE campaign_id = $1 AND account = $2`,
		campaignID, account).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		used, err = 0, nil
	}
	if err != nil {
		return err
	}

	if !c.Active(allocation, used, now) {
		err = fmt.Errorf("campaign %s, operator %s: %w", campaignID, operator, domain.ErrInactiveCampaign)
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE campaigns SET balance = balance - $1, updated_at = now() WHERE id = $2`,
		allocation, campaignID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO campaign_usage (campaign_id, account, used)
VALUES ($1, $2, 1)
ON CONFLICT (campaign_id, account) DO UPDATE SET used = campaign_usage.used + 1`,
		campaignID, account)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(struct {
		Campaign string `json:"campaign"`
		Account  string `json:"account"`
		Amount   int64  `json:"amount"`
	}{Campaign: campaignID, Account: account, Amount: allocation})
	err = insertEvent(ctx, tx, domain.Event{
		ID:        uuid.NewString(),
		Kind:      domain.EventCampaignRun,
		Payload:   payload,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	// External reserve last; its failure rolls everything back.
	err = reserve(ctx, allocation)
	return err
}
