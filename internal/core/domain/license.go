package domain

import "time"

// NoLicense is the sentinel attestation id meaning "no license stored"
// for an (account, holder) pair.
const NoLicense int64 = 0

// License maps an (account, holder) pair to the attestation backing the
// account's access to the holder's catalog. Records are never deleted;
// a later enforcement for the same pair overwrites the attestation id.
type License struct {
	Account       string
	Holder        string
	AttestationID int64
	UpdatedAt     time.Time
}

// Agreement is the externally-negotiated payment the enforcer converts
// into access. TotalPaid is already custodied by the ledger when the
// agreement reaches Enforce; the enforcer only validates and meters it.
type Agreement struct {
	ID        string
	TotalPaid int64
	Currency  string
	Parties   []string
	Broker    string
	Payload   []byte
	CreatedAt time.Time
}
