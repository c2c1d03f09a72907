package domain

// CriteriaKind discriminates what a Criteria value refers to. The tag is
// explicit: a criteria is either a holder account or an asset id, never
// guessed from the shape of the bytes.
type CriteriaKind string

const (
	// CriteriaHolder means the criteria names the holder account
	// directly.
	CriteriaHolder CriteriaKind = "holder"
	// CriteriaAsset means the criteria names an asset whose current
	// owner is the holder; resolution goes through AssetOwnership.
	CriteriaAsset CriteriaKind = "asset"
)

// Criteria selects the holder a policy query applies to.
type Criteria struct {
	Kind    CriteriaKind
	Account string
	AssetID int64
}

// Validate checks the tag and that the matching payload field is set.
func (c Criteria) Validate() error {
	switch c.Kind {
	case CriteriaHolder:
		if c.Account == "" {
			return ErrInvalidInput
		}
	case CriteriaAsset:
		if c.AssetID <= 0 {
			return ErrInvalidInput
		}
	default:
		return ErrUnsupportedOperation
	}
	return nil
}
