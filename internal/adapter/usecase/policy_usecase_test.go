package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rights-engine/internal/core/domain"
	"rights-engine/internal/core/port/mocks"
)

var (
	authorizer = domain.Caller{Account: "auth-1", Roles: []domain.Role{domain.RoleAuthorizer}}
	manager    = domain.Caller{Account: "mgr-1", Roles: []domain.Role{domain.RoleManager}}
	nobody     = domain.Caller{Account: "rando"}
)

func newPolicy(t *testing.T) (*PolicyUseCase, *mocks.PolicyRepository, *mocks.AttestationProvider, *mocks.AssetOwnership) {
	t.Helper()
	repo := &mocks.PolicyRepository{}
	attest := &mocks.AttestationProvider{}
	assets := &mocks.AssetOwnership{}
	return NewPolicyUseCase(repo, attest, assets), repo, attest, assets
}

func TestSetupRequiresAuthorizer(t *testing.T) {
	u, _, _, _ := newPolicy(t)

	err := u.Setup(context.Background(), nobody, domain.Package{Holder: "h1", UnitPrice: 100, Currency: "USD"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSetupRejectsZeroUnitPrice(t *testing.T) {
	u, _, _, _ := newPolicy(t)

	err := u.Setup(context.Background(), authorizer, domain.Package{Holder: "h1", UnitPrice: 0, Currency: "USD"})
	require.ErrorIs(t, err, domain.ErrInvalidSetup)
}

func TestSetupSavesPackage(t *testing.T) {
	u, repo, _, _ := newPolicy(t)

	repo.On("SavePackage", mock.Anything, mock.MatchedBy(func(pkg domain.Package) bool {
		return pkg.Holder == "h1" && pkg.UnitPrice == 100 && pkg.Currency == "USD"
	})).Return(nil)

	err := u.Setup(context.Background(), authorizer, domain.Package{Holder: "h1", UnitPrice: 100, Currency: "USD"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// Enforce with unitPrice=100, paid=950 and three parties yields three
// whole days (316 per account, floored), an exact total of 900 and one
// batched attestation call expiring three days out.
func TestEnforceIssuesBatchedLicenses(t *testing.T) {
	u, repo, attest, _ := newPolicy(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return now }

	parties := []string{"p1", "p2", "p3"}
	repo.On("GetPackage", mock.Anything, "h1").
		Return(&domain.Package{Holder: "h1", UnitPrice: 100, Currency: "USD"}, nil)
	attest.On("Attest", mock.Anything, parties, now.Add(3*24*time.Hour), []byte(nil)).
		Return([]int64{11, 12, 13}, nil)
	repo.On("SaveEnforcement", mock.Anything, mock.MatchedBy(func(agr domain.Agreement) bool {
		return agr.ID != "" && agr.TotalPaid == 950
	}), mock.MatchedBy(func(licenses []domain.License) bool {
		if len(licenses) != 3 {
			return false
		}
		for i, lic := range licenses {
			if lic.Account != parties[i] || lic.Holder != "h1" || lic.AttestationID != int64(11+i) {
				return false
			}
		}
		return true
	}), mock.MatchedBy(func(e domain.Event) bool {
		return e.Kind == domain.EventSubscriptionEnforced
	})).Return(nil)

	ids, err := u.Enforce(context.Background(), manager, "h1", domain.Agreement{
		TotalPaid: 950,
		Currency:  "USD",
		Parties:   parties,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{11, 12, 13}, ids)
	repo.AssertExpectations(t)
	attest.AssertExpectations(t)
}

// Paying less than one day per account is a valid degenerate
// enforcement: no attestations are issued and no error is returned.
func TestEnforceZeroDurationSucceedsWithoutLicenses(t *testing.T) {
	u, repo, attest, _ := newPolicy(t)

	repo.On("GetPackage", mock.Anything, "h1").
		Return(&domain.Package{Holder: "h1", UnitPrice: 100, Currency: "USD"}, nil)
	repo.On("SaveEnforcement", mock.Anything, mock.Anything, mock.MatchedBy(func(licenses []domain.License) bool {
		return len(licenses) == 0
	}), mock.Anything).Return(nil)

	ids, err := u.Enforce(context.Background(), manager, "h1", domain.Agreement{
		TotalPaid: 250,
		Currency:  "USD",
		Parties:   []string{"p1", "p2", "p3"},
	})
	require.NoError(t, err)
	require.Empty(t, ids)
	attest.AssertNotCalled(t, "Attest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnforceRequiresManager(t *testing.T) {
	u, _, _, _ := newPolicy(t)

	_, err := u.Enforce(context.Background(), authorizer, "h1", domain.Agreement{
		TotalPaid: 950, Currency: "USD", Parties: []string{"p1"},
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnforceUnconfiguredHolder(t *testing.T) {
	u, repo, _, _ := newPolicy(t)

	repo.On("GetPackage", mock.Anything, "h1").Return(nil, nil)

	_, err := u.Enforce(context.Background(), manager, "h1", domain.Agreement{
		TotalPaid: 950, Currency: "USD", Parties: []string{"p1"},
	})
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestEnforceRejectsEmptyParties(t *testing.T) {
	u, _, _, _ := newPolicy(t)

	_, err := u.Enforce(context.Background(), manager, "h1", domain.Agreement{
		TotalPaid: 950, Currency: "USD",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsAccessAllowedWithoutLicense(t *testing.T) {
	u, repo, attest, _ := newPolicy(t)

	repo.On("GetLicense", mock.Anything, "acct", "h1").Return(domain.NoLicense, nil)

	allowed, err := u.IsAccessAllowed(context.Background(), "acct", domain.Criteria{Kind: domain.CriteriaHolder, Account: "h1"})
	require.NoError(t, err)
	require.False(t, allowed)
	attest.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestIsAccessAllowedDelegatesToProvider(t *testing.T) {
	u, repo, attest, _ := newPolicy(t)

	repo.On("GetLicense", mock.Anything, "acct", "h1").Return(int64(42), nil)
	attest.On("Verify", mock.Anything, int64(42), "acct").Return(true, nil)

	allowed, err := u.IsAccessAllowed(context.Background(), "acct", domain.Criteria{Kind: domain.CriteriaHolder, Account: "h1"})
	require.NoError(t, err)
	require.True(t, allowed)
}

// Asset criteria resolve the holder through ownership before the
// license lookup.
func TestIsAccessAllowedResolvesAssetHolder(t *testing.T) {
	u, repo, attest, assets := newPolicy(t)

	assets.On("OwnerOf", mock.Anything, int64(1001)).Return("h1", nil)
	repo.On("GetLicense", mock.Anything, "acct", "h1").Return(int64(7), nil)
	attest.On("Verify", mock.Anything, int64(7), "acct").Return(false, nil)

	allowed, err := u.IsAccessAllowed(context.Background(), "acct", domain.Criteria{Kind: domain.CriteriaAsset, AssetID: 1001})
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestResolveTermsUnknownCriteriaKind(t *testing.T) {
	u, _, _, _ := newPolicy(t)

	_, err := u.ResolveTerms(context.Background(), domain.Criteria{Kind: "mystery"})
	require.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestResolveTermsReturnsDailyPeriod(t *testing.T) {
	u, repo, _, _ := newPolicy(t)

	repo.On("GetPackage", mock.Anything, "h1").
		Return(&domain.Package{Holder: "h1", UnitPrice: 100, Currency: "USD", MetadataURI: "uri"}, nil)

	terms, err := u.ResolveTerms(context.Background(), domain.Criteria{Kind: domain.CriteriaHolder, Account: "h1"})
	require.NoError(t, err)
	require.Equal(t, domain.Terms{UnitPrice: 100, Currency: "USD", Period: domain.RateDaily, MetadataURI: "uri"}, terms)
}

func TestGetLicenseReturnsRawID(t *testing.T) {
	u, repo, attest, _ := newPolicy(t)

	repo.On("GetLicense", mock.Anything, "acct", "h1").Return(int64(99), nil)

	id, err := u.GetLicense(context.Background(), "acct", domain.Criteria{Kind: domain.CriteriaHolder, Account: "h1"})
	require.NoError(t, err)
	require.Equal(t, int64(99), id)
	attest.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}
