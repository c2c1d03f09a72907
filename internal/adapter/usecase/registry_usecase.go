package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"rights-engine/internal/core/domain"
	"rights-engine/internal/core/port"
)

// RegistryUseCase instantiates campaigns from registered templates and
// binds them to (sponsor, policy) scopes. Instantiation is a plain
// factory from template configuration; instance identity is derived
// deterministically from the creation inputs.
type RegistryUseCase struct {
	templates port.RegistryRepository
	campaigns port.CampaignRepository

	now func() time.Time
}

// NewRegistryUseCase creates the registry over the template and
// campaign repositories.
func NewRegistryUseCase(templates port.RegistryRepository, campaigns port.CampaignRepository) *RegistryUseCase {
	return &RegistryUseCase{templates: templates, campaigns: campaigns, now: time.Now}
}

// CreateCampaign validates the template capability and the lifetime
// floor, then creates a campaign owned by the caller and binds
// scope(caller, policy) to it. A second creation for the same pair
// overwrites the binding.
func (u *RegistryUseCase) CreateCampaign(ctx context.Context, caller domain.Caller, templateID, policy string, expirationOffset time.Duration, description string) (*domain.Campaign, error) {
	if caller.Account == "" || templateID == "" || policy == "" {
		return nil, fmt.Errorf("create campaign: %w", domain.ErrInvalidInput)
	}
	if expirationOffset < domain.MinCampaignLifetime {
		return nil, fmt.Errorf("create campaign: offset %s below minimum lifetime: %w", expirationOffset, domain.ErrInvalidInput)
	}
	tpl, err := u.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %s: %w", templateID, domain.ErrNotFound)
	}
	if !tpl.Campaign {
		return nil, fmt.Errorf("template %s lacks campaign capability: %w", templateID, domain.ErrInvalidInput)
	}

	now := u.now().UTC()
	expiresAt := now.Add(expirationOffset)
	c := domain.Campaign{
		ID:          campaignID(caller.Account, templateID, expiresAt),
		Owner:       caller.Account,
		Policy:      policy,
		Currency:    tpl.Currency,
		Description: description,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	scope := domain.Scope{
		ID:         scopeID(caller.Account, policy),
		Sponsor:    caller.Account,
		Policy:     policy,
		CampaignID: c.ID,
		CreatedAt:  now,
	}
	event := newEvent(domain.EventCampaignRegistered, struct {
		Owner       string    `json:"owner"`
		Campaign    string    `json:"campaign"`
		ExpiresAt   time.Time `json:"expires_at"`
		ScopeID     string    `json:"scope_id"`
		Description string    `json:"description"`
	}{Owner: c.Owner, Campaign: c.ID, ExpiresAt: expiresAt, ScopeID: scope.ID, Description: description})

	if err = u.campaigns.Create(ctx, c, scope, event); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCampaign returns the campaign id bound to (account, policy), or
// "" when the scope was never created.
func (u *RegistryUseCase) GetCampaign(ctx context.Context, account, policy string) (string, error) {
	if account == "" || policy == "" {
		return "", fmt.Errorf("campaign lookup: %w", domain.ErrInvalidInput)
	}
	return u.templates.GetScopeCampaign(ctx, account, policy)
}

// campaignID derives the deterministic instance identity from the
// creation inputs.
func campaignID(owner, template string, expiresAt time.Time) string {
	sum := sha256.Sum256([]byte(owner + "|" + template + "|" + strconv.FormatInt(expiresAt.UnixNano(), 10)))
	return hex.EncodeToString(sum[:16])
}

// scopeID hashes the (sponsor, policy) pair into the scope key.
func scopeID(sponsor, policy string) string {
	sum := sha256.Sum256([]byte(sponsor + "|" + policy))
	return hex.EncodeToString(sum[:16])
}
