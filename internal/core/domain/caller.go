package domain

// Role is a capability granted to a caller. Roles arrive with the
// request (the HTTP adapter reads them from headers) and are checked
// explicitly by the usecases before dispatch.
type Role string

const (
	// RoleAuthorizer may configure holder packages.
	RoleAuthorizer Role = "authorizer"
	// RoleManager may enforce agreements against a policy.
	RoleManager Role = "manager"
)

// Caller identifies who is invoking an operation. Account is the
// caller's ledger account; ownership checks compare it against stored
// owner fields.
type Caller struct {
	Account string
	Roles   []Role
}

// Has reports whether the caller carries the given role.
func (c Caller) Has(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
