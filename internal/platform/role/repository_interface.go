package role

import "context"

// Scope is a partial (company, service) filter. Empty fields are
// unconstrained.
type Scope struct {
	CompanyID string
	Service   string
}

// IsZero reports whether the scope constrains nothing.
func (s Scope) IsZero() bool {
	return s.CompanyID == "" && s.Service == ""
}

// Repository defines data access for groups and roles.
// All implementations must be wrapped with instrumentation.
//
// Mutating use cases persist through the unit of work; the write methods
// here serve membership sync (inside a unit-of-work transaction),
// startup seeding, and tests.
type Repository interface {
	// FindByScope finds all roles matching the scope filter.
	FindByScope(ctx context.Context, scope Scope) ([]*Group, error)

	// FindGroupsByScope finds all plain (non-role) groups in scope.
	FindGroupsByScope(ctx context.Context, scope Scope) ([]*Group, error)

	// FindByUser finds roles whose membership contains userID, narrowed
	// by scope.
	FindByUser(ctx context.Context, userID string, scope Scope) ([]*Group, error)

	// FindByID returns the group or nil when it does not exist.
	FindByID(ctx context.Context, id string) (*Group, error)

	// CountRolesByScope counts roles for the exact scope. Used to derive
	// rootness for a new role.
	CountRolesByScope(ctx context.Context, scope Scope) (int64, error)

	// Insert inserts a new group. Returns repository.ErrDuplicateKey
	// (wrapped) when the (company, service, name) invariant is violated.
	Insert(ctx context.Context, g *Group) error

	// Update replaces a group document by ID.
	Update(ctx context.Context, g *Group) error

	// Delete removes a group by ID.
	Delete(ctx context.Context, id string) error

	// PullUserFromRoles removes userID from the membership of every role
	// matching the scope filter.
	PullUserFromRoles(ctx context.Context, userID string, scope Scope) error

	// AddUserToRoles adds userID to the membership of the roles matching
	// both the explicit id set and the scope filter. Ids outside scope
	// or unknown are silently skipped.
	AddUserToRoles(ctx context.Context, userID string, roleIDs []string, scope Scope) error
}
