package domain

import "time"

// Campaign is a pool of sponsor funds metering third-party access.
// Balance is in integer currency units and mirrors what the sponsor has
// collected into the pool minus what runs have reserved out of it.
// QuotaLimit bounds the usage counter of every account; allocation is
// the per-run amount each operator may spend.
type Campaign struct {
	ID          string
	Owner       string
	Policy      string
	Currency    string
	Description string
	ExpiresAt   time.Time
	QuotaLimit  int64
	Balance     int64
	Paused      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MinCampaignLifetime is the floor on the expiration offset accepted at
// campaign creation.
const MinCampaignLifetime = time.Hour

// Expired reports whether the campaign is past its expiration time.
// Expiry is soft: the record stays, it just stops being active.
func (c *Campaign) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Active evaluates the run precondition for one (operator, account)
// pair, given the operator's allocation and the account's usage so far.
// All five conditions must hold; usage is blocked exactly at the quota
// boundary (used == limit already fails).
func (c *Campaign) Active(allocation, used int64, now time.Time) bool {
	if allocation <= 0 || c.QuotaLimit <= 0 {
		return false
	}
	if c.Paused || c.Expired(now) {
		return false
	}
	if used >= c.QuotaLimit {
		return false
	}
	return c.Balance >= allocation
}

// Template is a registry-registered campaign blueprint. Campaign is the
// capability flag the registry checks before instantiating: templates
// without it cannot produce campaigns.
type Template struct {
	ID          string
	Currency    string
	Description string
	Campaign    bool
	CreatedAt   time.Time
}

// Scope binds a (sponsor, policy) pair to the campaign instance serving
// it. One scope per pair; re-creating overwrites the binding.
type Scope struct {
	ID         string
	Sponsor    string
	Policy     string
	CampaignID string
	CreatedAt  time.Time
}
