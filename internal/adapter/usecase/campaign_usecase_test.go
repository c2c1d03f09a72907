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

var owner = domain.Caller{Account: "sponsor-1"}

func liveCampaign(now time.Time) *domain.Campaign {
	return &domain.Campaign{
		ID:         "c1",
		Owner:      "sponsor-1",
		Policy:     "policy-1",
		Currency:   "USD",
		ExpiresAt:  now.Add(24 * time.Hour),
		QuotaLimit: 2,
		Balance:    1000,
	}
}

func newCampaign(t *testing.T, now time.Time) (*CampaignUseCase, *mocks.CampaignRepository, *mocks.Ledger) {
	t.Helper()
	repo := &mocks.CampaignRepository{}
	ledger := &mocks.Ledger{}
	u := NewCampaignUseCase(repo, ledger)
	u.now = func() time.Time { return now }
	return u, repo, ledger
}

// AddFunds collects from the owner inside the repository transaction:
// the settle callback handed to AdjustBalance must drive Ledger.Collect
// with the campaign currency.
func TestAddFundsCollectsInsideTransaction(t *testing.T) {
	now := time.Now()
	u, repo, ledger := newCampaign(t, now)

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)
	ledger.On("Collect", mock.Anything, "sponsor-1", int64(500), "USD").Return(int64(500), nil)
	repo.On("AdjustBalance", mock.Anything, "c1", int64(500), mock.MatchedBy(func(e domain.Event) bool {
		return e.Kind == domain.EventFundsAdded
	}), mock.Anything).
		Run(func(args mock.Arguments) {
			settle := args.Get(4).(func(ctx context.Context) error)
			require.NoError(t, settle(context.Background()))
		}).
		Return(nil)

	require.NoError(t, u.AddFunds(context.Background(), owner, "c1", 500))
	ledger.AssertExpectations(t)
}

func TestAddFundsRejectsNonOwner(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)

	err := u.AddFunds(context.Background(), domain.Caller{Account: "intruder"}, "c1", 500)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRemoveFundsOverdraft(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)
	repo.On("AdjustBalance", mock.Anything, "c1", int64(-5000), mock.Anything, mock.Anything).
		Return(domain.ErrInsufficientFunds)

	err := u.RemoveFunds(context.Background(), owner, "c1", 5000)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestSetQuotaLimitRejectsZero(t *testing.T) {
	u, _, _ := newCampaign(t, time.Now())

	err := u.SetQuotaLimit(context.Background(), owner, "c1", 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetFundsAllocationRejectsZeroAmount(t *testing.T) {
	u, _, _ := newCampaign(t, time.Now())

	err := u.SetFundsAllocation(context.Background(), owner, "c1", "op-1", 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Run hands the repository a reserve callback that earmarks the
// allocation for the operator in the campaign currency.
func TestRunReservesAllocation(t *testing.T) {
	now := time.Now()
	u, repo, ledger := newCampaign(t, now)
	operator := domain.Caller{Account: "op-1"}

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)
	ledger.On("Approve", mock.Anything, "op-1", int64(250), "USD").Return(nil)
	ledger.On("Reserve", mock.Anything, "op-1", int64(250), "USD").Return(nil)
	repo.On("Run", mock.Anything, "c1", "op-1", "acct-9", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reserve := args.Get(5).(func(ctx context.Context, amount int64) error)
			require.NoError(t, reserve(context.Background(), 250))
		}).
		Return(nil)

	require.NoError(t, u.Run(context.Background(), operator, "c1", "acct-9"))
	ledger.AssertExpectations(t)
}

func TestRunInactiveCampaign(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)
	repo.On("Run", mock.Anything, "c1", "op-1", "acct-9", mock.Anything, mock.Anything).
		Return(domain.ErrInactiveCampaign)

	err := u.Run(context.Background(), domain.Caller{Account: "op-1"}, "c1", "acct-9")
	require.ErrorIs(t, err, domain.ErrInactiveCampaign)
}

// Quota boundary: with limit 2 the account is active at usage 0 and 1,
// inactive exactly at 2.
func TestIsActiveQuotaBoundary(t *testing.T) {
	now := time.Now()

	for used, want := range map[int64]bool{0: true, 1: true, 2: false, 3: false} {
		u, repo, _ := newCampaign(t, now)
		repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)
		repo.On("GetAllocation", mock.Anything, "c1", "op-1").Return(int64(250), nil)
		repo.On("GetUsage", mock.Anything, "c1", "acct-9").Return(used, nil)

		active, err := u.IsActive(context.Background(), "c1", "op-1", "acct-9")
		require.NoError(t, err)
		require.Equal(t, want, active, "used=%d", used)
	}
}

// An expired campaign is inactive no matter how much balance and
// allocation remain.
func TestIsActiveExpiryDominates(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	c := liveCampaign(now)
	c.ExpiresAt = now.Add(-time.Minute)
	repo.On("Get", mock.Anything, "c1").Return(c, nil)
	repo.On("GetAllocation", mock.Anything, "c1", "op-1").Return(int64(250), nil)
	repo.On("GetUsage", mock.Anything, "c1", "acct-9").Return(int64(0), nil)

	active, err := u.IsActive(context.Background(), "c1", "op-1", "acct-9")
	require.NoError(t, err)
	require.False(t, active)
}

func TestIsActivePauseDominates(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	c := liveCampaign(now)
	c.Paused = true
	repo.On("Get", mock.Anything, "c1").Return(c, nil)
	repo.On("GetAllocation", mock.Anything, "c1", "op-1").Return(int64(250), nil)
	repo.On("GetUsage", mock.Anything, "c1", "acct-9").Return(int64(0), nil)

	active, err := u.IsActive(context.Background(), "c1", "op-1", "acct-9")
	require.NoError(t, err)
	require.False(t, active)
}

func TestIsActiveAbsentCampaign(t *testing.T) {
	u, repo, _ := newCampaign(t, time.Now())

	repo.On("Get", mock.Anything, "ghost").Return(nil, nil)

	active, err := u.IsActive(context.Background(), "ghost", "op-1", "acct-9")
	require.NoError(t, err)
	require.False(t, active)
}

func TestPauseRequiresOwner(t *testing.T) {
	now := time.Now()
	u, repo, _ := newCampaign(t, now)

	repo.On("Get", mock.Anything, "c1").Return(liveCampaign(now), nil)

	err := u.Pause(context.Background(), domain.Caller{Account: "intruder"}, "c1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
