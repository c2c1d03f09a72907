package usecase

import (
	"context"
	"fmt"
	"time"

	"rights-engine/internal/core/domain"
	"rights-engine/internal/core/port"
)

// CampaignUseCase implements the campaign accounting engine: pooled
// funds, per-operator allocations, per-account quotas and metered runs.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	ledger port.Ledger

	now func() time.Time
}

// NewCampaignUseCase creates the engine over its persistence and ledger
// ports.
func NewCampaignUseCase(repo port.CampaignRepository, ledger port.Ledger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, ledger: ledger, now: time.Now}
}

// Get returns campaign state for inspection.
func (u *CampaignUseCase) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// AddFunds collects amount from the owner into the pool. The ledger
// collect runs inside the same transaction as the balance update, so a
// failed collect leaves the recorded balance untouched.
func (u *CampaignUseCase) AddFunds(ctx context.Context, caller domain.Caller, id string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("add funds: %w", domain.ErrInvalidInput)
	}
	c, err := u.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	event := newEvent(domain.EventFundsAdded, struct {
		Campaign string `json:"campaign"`
		Amount   int64  `json:"amount"`
	}{Campaign: id, Amount: amount})
	return u.repo.AdjustBalance(ctx, id, amount, event, func(ctx context.Context) error {
		_, err := u.ledger.Collect(ctx, caller.Account, amount, c.Currency)
		return err
	})
}

// RemoveFunds pays amount from the pool back to the owner. Requests
// above the recorded balance fail with ErrInsufficientFunds.
func (u *CampaignUseCase) RemoveFunds(ctx context.Context, caller domain.Caller, id string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("remove funds: %w", domain.ErrInvalidInput)
	}
	c, err := u.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	event := newEvent(domain.EventFundsRemoved, struct {
		Campaign string `json:"campaign"`
		Amount   int64  `json:"amount"`
	}{Campaign: id, Amount: amount})
	return u.repo.AdjustBalance(ctx, id, -amount, event, func(ctx context.Context) error {
		_, err := u.ledger.Transfer(ctx, caller.Account, amount, c.Currency)
		return err
	})
}

// SetQuotaLimit sets the per-account usage limit.
func (u *CampaignUseCase) SetQuotaLimit(ctx context.Context, caller domain.Caller, id string, limit int64) error {
	if limit <= 0 {
		return fmt.Errorf("set quota: %w", domain.ErrInvalidInput)
	}
	if _, err := u.owned(ctx, caller, id); err != nil {
		return err
	}
	event := newEvent(domain.EventMaxQuotaLimitSet, struct {
		Campaign string `json:"campaign"`
		Limit    int64  `json:"limit"`
	}{Campaign: id, Limit: limit})
	return u.repo.SetQuotaLimit(ctx, id, limit, event)
}

// SetFundsAllocation sets the operator's per-run spend. The repository
// rejects allocations above the current balance.
func (u *CampaignUseCase) SetFundsAllocation(ctx context.Context, caller domain.Caller, id, operator string, amount int64) error {
	if amount <= 0 || operator == "" {
		return fmt.Errorf("set allocation: %w", domain.ErrInvalidInput)
	}
	if _, err := u.owned(ctx, caller, id); err != nil {
		return err
	}
	return u.repo.SetAllocation(ctx, id, operator, amount)
}

// Run executes one sponsored access for account, spending the calling
// operator's allocation. The usage increment, balance debit, audit
// event and ledger reserve commit together or not at all; the reserve
// is the last step inside the transaction.
func (u *CampaignUseCase) Run(ctx context.Context, operator domain.Caller, id, account string) error {
	if operator.Account == "" || account == "" {
		return fmt.Errorf("run: %w", domain.ErrInvalidInput)
	}
	c, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	return u.repo.Run(ctx, id, operator.Account, account, u.now().UTC(), func(ctx context.Context, amount int64) error {
		// Allowance first, then the hold: the operator spends the
		// reserved amount through the normal payment path.
		if err := u.ledger.Approve(ctx, operator.Account, amount, c.Currency); err != nil {
			return err
		}
		return u.ledger.Reserve(ctx, operator.Account, amount, c.Currency)
	})
}

// IsActive evaluates the five-way run precondition without side
// effects. An absent campaign is simply inactive.
func (u *CampaignUseCase) IsActive(ctx context.Context, id, operator, account string) (bool, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	allocation, err := u.repo.GetAllocation(ctx, id, operator)
	if err != nil {
		return false, err
	}
	used, err := u.repo.GetUsage(ctx, id, account)
	if err != nil {
		return false, err
	}
	return c.Active(allocation, used, u.now().UTC()), nil
}

// Pause stops all runs until the owner unpauses.
func (u *CampaignUseCase) Pause(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := u.owned(ctx, caller, id); err != nil {
		return err
	}
	return u.repo.SetPaused(ctx, id, true)
}

// Unpause lifts the pause flag.
func (u *CampaignUseCase) Unpause(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := u.owned(ctx, caller, id); err != nil {
		return err
	}
	return u.repo.SetPaused(ctx, id, false)
}

// owned loads the campaign and checks the caller against its owner.
func (u *CampaignUseCase) owned(ctx context.Context, caller domain.Caller, id string) (*domain.Campaign, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Owner != caller.Account {
		return nil, fmt.Errorf("campaign %s: caller %s is not the owner: %w", id, caller.Account, domain.ErrUnauthorized)
	}
	return c, nil
}
