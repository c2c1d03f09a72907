package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rights-engine/internal/core/domain"
	"rights-engine/internal/core/port"
	"rights-engine/internal/core/pricing"
)

// PolicyUseCase implements the subscription policy enforcer. It owns
// per-holder pricing, verifies payment sufficiency, issues attestations
// through the provider and answers access queries.
type PolicyUseCase struct {
	repo   port.PolicyRepository
	attest port.AttestationProvider
	assets port.AssetOwnership

	now func() time.Time
}

// NewPolicyUseCase creates the enforcer over its persistence and
// collaborator ports.
func NewPolicyUseCase(repo port.PolicyRepository, attest port.AttestationProvider, assets port.AssetOwnership) *PolicyUseCase {
	return &PolicyUseCase{repo: repo, attest: attest, assets: assets, now: time.Now}
}

// Setup configures the holder's package. Only authorizers may call it;
// a zero unit price is rejected. Re-setup overwrites the package, so
// holders can be re-priced without a separate update path.
func (u *PolicyUseCase) Setup(ctx context.Context, caller domain.Caller, pkg domain.Package) error {
	if !caller.Has(domain.RoleAuthorizer) {
		return fmt.Errorf("setup: %w", domain.ErrUnauthorized)
	}
	if pkg.Holder == "" || pkg.Currency == "" {
		return fmt.Errorf("setup: %w", domain.ErrInvalidInput)
	}
	if pkg.UnitPrice <= 0 {
		return fmt.Errorf("setup: zero unit price: %w", domain.ErrInvalidSetup)
	}
	pkg.UpdatedAt = u.now().UTC()
	return u.repo.SavePackage(ctx, pkg)
}

// Enforce converts an agreement into time-boxed licenses for every
// party. The whole-day duration is floored from the paid amount; a zero
// duration is a valid degenerate enforcement that issues nothing.
func (u *PolicyUseCase) Enforce(ctx context.Context, caller domain.Caller, holder string, agr domain.Agreement) ([]int64, error) {
	if !caller.Has(domain.RoleManager) {
		return nil, fmt.Errorf("enforce: %w", domain.ErrUnauthorized)
	}
	if holder == "" || len(agr.Parties) == 0 {
		return nil, fmt.Errorf("enforce: %w", domain.ErrInvalidInput)
	}
	pkg, err := u.repo.GetPackage(ctx, holder)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, fmt.Errorf("enforce %s: %w", holder, domain.ErrNotConfigured)
	}
	if agr.Currency != pkg.Currency {
		return nil, fmt.Errorf("enforce: currency mismatch: %w", domain.ErrInvalidInput)
	}

	days, exactTotal, err := pricing.CalcDuration(agr.TotalPaid, pkg.UnitPrice, int64(len(agr.Parties)))
	if err != nil {
		return nil, fmt.Errorf("enforce: %w", domain.ErrInvalidInput)
	}
	if agr.TotalPaid < exactTotal {
		// Unreachable for valid inputs (floor math guarantees
		// exactTotal <= paid); kept as a loud invariant guard.
		return nil, fmt.Errorf("enforce: paid %d below total %d: %w", agr.TotalPaid, exactTotal, domain.ErrInsufficientFunds)
	}

	now := u.now().UTC()
	if agr.ID == "" {
		agr.ID = uuid.NewString()
	}
	agr.CreatedAt = now

	var (
		ids      []int64
		licenses []domain.License
	)
	if days > 0 {
		expiresAt := now.Add(time.Duration(days) * 24 * time.Hour)
		ids, err = u.attest.Attest(ctx, agr.Parties, expiresAt, agr.Payload)
		if err != nil {
			return nil, fmt.Errorf("enforce: attest: %w", err)
		}
		if len(ids) != len(agr.Parties) {
			return nil, fmt.Errorf("enforce: provider returned %d ids for %d parties", len(ids), len(agr.Parties))
		}
		licenses = make([]domain.License, len(agr.Parties))
		for i, party := range agr.Parties {
			licenses[i] = domain.License{
				Account:       party,
				Holder:        holder,
				AttestationID: ids[i],
				UpdatedAt:     now,
			}
		}
	}

	event := newEvent(domain.EventSubscriptionEnforced, struct {
		Holder    string `json:"holder"`
		UnitPrice int64  `json:"unit_price"`
		Duration  int64  `json:"duration_days"`
	}{Holder: holder, UnitPrice: pkg.UnitPrice, Duration: days})

	if err = u.repo.SaveEnforcement(ctx, agr, licenses, event); err != nil {
		return nil, err
	}
	return ids, nil
}

// IsAccessAllowed resolves the holder from criteria and verifies the
// stored license with the provider. A missing license short-circuits to
// false without a provider call.
func (u *PolicyUseCase) IsAccessAllowed(ctx context.Context, account string, criteria domain.Criteria) (bool, error) {
	if account == "" {
		return false, fmt.Errorf("access check: %w", domain.ErrInvalidInput)
	}
	holder, err := u.resolveHolder(ctx, criteria)
	if err != nil {
		return false, err
	}
	id, err := u.repo.GetLicense(ctx, account, holder)
	if err != nil {
		return false, err
	}
	if id == domain.NoLicense {
		return false, nil
	}
	return u.attest.Verify(ctx, id, account)
}

// ResolveTerms returns the pricing terms of the holder selected by
// criteria.
func (u *PolicyUseCase) ResolveTerms(ctx context.Context, criteria domain.Criteria) (domain.Terms, error) {
	holder, err := u.resolveHolder(ctx, criteria)
	if err != nil {
		return domain.Terms{}, err
	}
	pkg, err := u.repo.GetPackage(ctx, holder)
	if err != nil {
		return domain.Terms{}, err
	}
	if pkg == nil {
		return domain.Terms{}, fmt.Errorf("terms for %s: %w", holder, domain.ErrNotConfigured)
	}
	return domain.Terms{
		UnitPrice:   pkg.UnitPrice,
		Currency:    pkg.Currency,
		Period:      domain.RateDaily,
		MetadataURI: pkg.MetadataURI,
	}, nil
}

// GetLicense returns the raw stored attestation id without checking
// freshness. Callers that need a live answer use IsAccessAllowed.
func (u *PolicyUseCase) GetLicense(ctx context.Context, account string, criteria domain.Criteria) (int64, error) {
	if account == "" {
		return domain.NoLicense, fmt.Errorf("license lookup: %w", domain.ErrInvalidInput)
	}
	holder, err := u.resolveHolder(ctx, criteria)
	if err != nil {
		return domain.NoLicense, err
	}
	return u.repo.GetLicense(ctx, account, holder)
}

// resolveHolder dispatches on the criteria tag: holder criteria name
// the account directly, asset criteria go through ownership resolution.
func (u *PolicyUseCase) resolveHolder(ctx context.Context, criteria domain.Criteria) (string, error) {
	if err := criteria.Validate(); err != nil {
		return "", fmt.Errorf("criteria: %w", err)
	}
	switch criteria.Kind {
	case domain.CriteriaHolder:
		return criteria.Account, nil
	case domain.CriteriaAsset:
		holder, err := u.assets.OwnerOf(ctx, criteria.AssetID)
		if err != nil {
			return "", fmt.Errorf("criteria asset %d: %w", criteria.AssetID, err)
		}
		if holder == "" {
			return "", fmt.Errorf("criteria asset %d has no owner: %w", criteria.AssetID, domain.ErrUnsupportedOperation)
		}
		return holder, nil
	default:
		return "", fmt.Errorf("criteria: %w", domain.ErrUnsupportedOperation)
	}
}
