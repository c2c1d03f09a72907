package port

import (
	"context"
	"time"

	"rights-engine/internal/core/domain"
)

// PolicyUseCase is the subscription policy enforcer: it converts lump
// payments into verified access durations and answers access queries.
// This is the primary inbound port of the licensing half of the engine.
type PolicyUseCase interface {
	// Setup configures the holder's package. Caller must carry
	// domain.RoleAuthorizer. A repeated setup overwrites the package.
	Setup(ctx context.Context, caller domain.Caller, pkg domain.Package) error

	// Enforce converts an agreement into licenses for every party. The
	// caller must carry domain.RoleManager and the holder must be
	// configured. It returns the issued attestation ids in party
	// order; a zero computed duration succeeds with no ids issued.
	Enforce(ctx context.Context, caller domain.Caller, holder string, agr domain.Agreement) ([]int64, error)

	// IsAccessAllowed reports whether the account holds a currently
	// valid license for the holder selected by criteria.
	IsAccessAllowed(ctx context.Context, account string, criteria domain.Criteria) (bool, error)

	// ResolveTerms returns the pricing terms of the holder selected by
	// criteria.
	ResolveTerms(ctx context.Context, criteria domain.Criteria) (domain.Terms, error)

	// GetLicense returns the raw stored attestation id, without
	// verifying freshness. domain.NoLicense means no license.
	GetLicense(ctx context.Context, account string, criteria domain.Criteria) (int64, error)
}

// CampaignUseCase is the campaign accounting engine. All owner
// operations verify the caller against the stored campaign owner.
type CampaignUseCase interface {
	// Get returns campaign state for inspection.
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	// AddFunds collects amount from the owner into the pool.
	AddFunds(ctx context.Context, caller domain.Caller, id string, amount int64) error
	// RemoveFunds pays amount from the pool back to the owner.
	RemoveFunds(ctx context.Context, caller domain.Caller, id string, amount int64) error
	// SetQuotaLimit sets the per-account usage limit; must be > 0.
	SetQuotaLimit(ctx context.Context, caller domain.Caller, id string, limit int64) error
	// SetFundsAllocation sets the operator's per-run spend; must be
	// > 0 and within the current balance.
	SetFundsAllocation(ctx context.Context, caller domain.Caller, id, operator string, amount int64) error
	// Run executes one sponsored access on behalf of account, spending
	// the calling operator's allocation.
	Run(ctx context.Context, operator domain.Caller, id, account string) error
	// IsActive is the side-effect-free five-way run precondition.
	IsActive(ctx context.Context, id, operator, account string) (bool, error)
	// Pause and Unpause toggle the owner's kill switch.
	Pause(ctx context.Context, caller domain.Caller, id string) error
	Unpause(ctx context.Context, caller domain.Caller, id string) error
}

// RegistryUseCase instantiates campaigns from templates and binds them
// to (sponsor, policy) scopes.
type RegistryUseCase interface {
	// CreateCampaign validates the template capability and the
	// lifetime floor, instantiates a campaign owned by the caller and
	// binds scope(caller, policy) to it, overwriting any previous
	// binding for the pair.
	CreateCampaign(ctx context.Context, caller domain.Caller, templateID, policy string, expirationOffset time.Duration, description string) (*domain.Campaign, error)
	// GetCampaign returns the campaign id bound to (account, policy),
	// or "" when none exists.
	GetCampaign(ctx context.Context, account, policy string) (string, error)
}
