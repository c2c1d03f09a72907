package configs

// Service carries the engine's own identities: the escrow account the
// ledger adapter custodies pooled funds under, and the issuer identity
// stamped on attestations.
type Service struct {
	// EscrowAccount is the ledger account holding collected funds.
	EscrowAccount string `env:"ESCROW_ACCOUNT" envDefault:"rights-engine-escrow"`
	// AttestorName is the attestation provider's display name.
	AttestorName string `env:"ATTESTOR_NAME" envDefault:"rights-engine-attestor"`
	// AttestorAddress is the issuer account recorded on every
	// attestation and checked during verification.
	AttestorAddress string `env:"ATTESTOR_ADDRESS" envDefault:"attestor-0001"`
}
