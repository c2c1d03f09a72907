package domain

import "time"

// Package is a holder's subscription pricing: the price of one day of
// access for one account, in integer currency units. A holder without a
// package is unconfigured and cannot be enforced against. Re-running
// setup overwrites the package in place.
type Package struct {
	Holder      string
	UnitPrice   int64
	Currency    string
	MetadataURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RateDaily is the only billing period the enforcer supports. Durations
// are whole days; there is no partial-day credit.
const RateDaily = "DAILY"

// Terms is the public view of a package returned by ResolveTerms.
type Terms struct {
	UnitPrice   int64
	Currency    string
	Period      string
	MetadataURI string
}
