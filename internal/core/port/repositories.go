package port

import (
	"context"
	"time"

	"rights-engine/internal/core/domain"
)

// PolicyRepository is the persistence layer of the subscription
// enforcer. Implementations must apply SaveEnforcement atomically: the
// agreement record, every license upsert and the audit event commit
// together or not at all.
type PolicyRepository interface {
	// SavePackage upserts a holder's package.
	SavePackage(ctx context.Context, pkg domain.Package) error
	// GetPackage returns the holder's package, or nil when the holder
	// is unconfigured.
	GetPackage(ctx context.Context, holder string) (*domain.Package, error)
	// GetLicense returns the stored attestation id for the pair, or
	// domain.NoLicense when absent.
	GetLicense(ctx context.Context, account, holder string) (int64, error)
	// SaveEnforcement records the agreement, the issued licenses and
	// the audit event in one transaction.
	SaveEnforcement(ctx context.Context, agr domain.Agreement, licenses []domain.License, event domain.Event) error
}

// CampaignRepository is the persistence layer of the campaign
// accounting engine. Every mutating method runs in a serializable
// transaction with the campaign row locked; the optional settle
// callback executes inside that transaction, after the local mutations,
// so a ledger failure aborts the whole operation.
type CampaignRepository interface {
	// Create inserts a campaign together with its scope binding and
	// the registration event. An existing scope for the same
	// (sponsor, policy) pair is overwritten.
	Create(ctx context.Context, c domain.Campaign, scope domain.Scope, event domain.Event) error
	// Get returns a campaign, or nil when absent.
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	// GetAllocation returns the operator's per-run allocation, 0 when
	// none is set.
	GetAllocation(ctx context.Context, campaignID, operator string) (int64, error)
	// GetUsage returns the account's usage counter, 0 when the account
	// never ran.
	GetUsage(ctx context.Context, campaignID, account string) (int64, error)
	// AdjustBalance applies a signed delta to the recorded pool
	// balance. It fails with domain.ErrInsufficientFunds when the
	// delta would take the balance below zero.
	AdjustBalance(ctx context.Context, campaignID string, delta int64, event domain.Event, settle func(ctx context.Context) error) error
	// SetQuotaLimit stores the per-account usage limit.
	SetQuotaLimit(ctx context.Context, campaignID string, limit int64, event domain.Event) error
	// SetAllocation stores the operator's per-run allocation. It fails
	// with domain.ErrInsufficientFunds when amount exceeds the current
	// balance.
	SetAllocation(ctx context.Context, campaignID, operator string, amount int64) error
	// SetPaused toggles the pause flag.
	SetPaused(ctx context.Context, campaignID string, paused bool) error
	// Run executes one sponsored access: it locks the campaign,
	// re-evaluates the active predicate, increments the account's
	// usage counter, debits the operator's allocation from the
	// balance, records the run event and invokes reserve with the
	// allocation amount, all in one transaction. It fails with
	// domain.ErrInactiveCampaign when the predicate does not hold.
	Run(ctx context.Context, campaignID, operator, account string, now time.Time, reserve func(ctx context.Context, amount int64) error) error
}

// RegistryRepository resolves campaign templates and scope bindings.
type RegistryRepository interface {
	// GetTemplate returns a template, or nil when absent.
	GetTemplate(ctx context.Context, id string) (*domain.Template, error)
	// GetScopeCampaign returns the campaign id bound to the
	// (sponsor, policy) pair, or "" when the scope is absent.
	GetScopeCampaign(ctx context.Context, sponsor, policy string) (string, error)
}
