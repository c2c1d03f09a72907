package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCampaignActive(t *testing.T) {
	now := time.Now()
	base := Campaign{
		ExpiresAt:  now.Add(time.Hour),
		QuotaLimit: 2,
		Balance:    500,
	}

	tests := []struct {
		name       string
		mutate     func(c *Campaign)
		allocation int64
		used       int64
		want       bool
	}{
		{name: "all conditions hold", allocation: 100, used: 0, want: true},
		{name: "no allocation", allocation: 0, used: 0, want: false},
		{name: "balance below allocation", mutate: func(c *Campaign) { c.Balance = 99 }, allocation: 100, used: 0, want: false},
		{name: "quota boundary is strict", allocation: 100, used: 2, want: false},
		{name: "one run of headroom left", allocation: 100, used: 1, want: true},
		{name: "zero quota limit", mutate: func(c *Campaign) { c.QuotaLimit = 0 }, allocation: 100, used: 0, want: false},
		{name: "paused", mutate: func(c *Campaign) { c.Paused = true }, allocation: 100, used: 0, want: false},
		{name: "expired", mutate: func(c *Campaign) { c.ExpiresAt = now.Add(-time.Second) }, allocation: 100, used: 0, want: false},
		{name: "expiring this instant", mutate: func(c *Campaign) { c.ExpiresAt = now }, allocation: 100, used: 0, want: false},
		{name: "balance exactly covers allocation", mutate: func(c *Campaign) { c.Balance = 100 }, allocation: 100, used: 0, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			require.Equal(t, tt.want, c.Active(tt.allocation, tt.used, now))
		})
	}
}

func TestCriteriaValidate(t *testing.T) {
	require.NoError(t, Criteria{Kind: CriteriaHolder, Account: "h1"}.Validate())
	require.NoError(t, Criteria{Kind: CriteriaAsset, AssetID: 1}.Validate())
	require.ErrorIs(t, Criteria{Kind: CriteriaHolder}.Validate(), ErrInvalidInput)
	require.ErrorIs(t, Criteria{Kind: CriteriaAsset}.Validate(), ErrInvalidInput)
	require.ErrorIs(t, Criteria{Kind: "surprise"}.Validate(), ErrUnsupportedOperation)
}

func TestCallerHas(t *testing.T) {
	c := Caller{Account: "a", Roles: []Role{RoleManager}}
	require.True(t, c.Has(RoleManager))
	require.False(t, c.Has(RoleAuthorizer))
}
