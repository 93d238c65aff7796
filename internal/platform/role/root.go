package role

import (
	"context"

	"go.accessdeck.tech/internal/platform/common"
)

// Tracker answers root-role questions. Rootness is always derived by
// query; there is no cached flag to drift from the store.
//
// The check-then-insert sequence on create is not atomic. The store
// carries a partial unique index on (companyId, service) where
// isRoot is true, so the loser of a concurrent first-create fails the
// insert and is retried as non-root by the create use case.
type Tracker struct {
	repo Repository
}

// NewTracker creates a root-role tracker backed by the repository.
func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// IsFirstRole reports whether no role exists yet for the exact
// (company, service) pair. The first role created for a pair becomes its
// root role.
func (t *Tracker) IsFirstRole(ctx context.Context, companyID, service string) (bool, error) {
	count, err := t.repo.CountRolesByScope(ctx, Scope{CompanyID: companyID, Service: service})
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// AssertNotRoot loads the role and rejects mutation of a root role.
// Returns the loaded group on success so callers avoid a second fetch.
func (t *Tracker) AssertNotRoot(ctx context.Context, roleID string) (*Group, *common.UseCaseError) {
	g, err := t.repo.FindByID(ctx, roleID)
	if err != nil {
		return nil, common.InternalError(common.ErrCodeDBError,
			"Failed to find role", map[string]any{"error": err.Error()})
	}
	if g == nil || !g.IsRole() {
		return nil, common.NotFoundError(common.ErrCodeRoleNotFound,
			"Role not found", map[string]any{"id": roleID})
	}
	if g.IsRoot {
		return nil, common.BusinessRuleError(common.ErrCodeRootRoleProtected,
			"root role is protected", map[string]any{"id": roleID})
	}
	return g, nil
}
