package operations

import (
	"context"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/permission"
	"go.accessdeck.tech/internal/platform/role"
	"go.accessdeck.tech/internal/platform/user"
)

// GetUserPermissionsQuery identifies the user and the scope to resolve
// permissions in.
type GetUserPermissionsQuery struct {
	UserID    string `json:"userId"`
	CompanyID string `json:"company,omitempty"`
	Service   string `json:"service,omitempty"`
}

// GetUserPermissionsUseCase resolves a user's effective permissions by
// combining the permission maps of the roles they belong to.
type GetUserPermissionsUseCase struct {
	roles role.Repository
	users user.Repository
}

// NewGetUserPermissionsUseCase creates a new GetUserPermissionsUseCase
func NewGetUserPermissionsUseCase(roles role.Repository, users user.Repository) *GetUserPermissionsUseCase {
	return &GetUserPermissionsUseCase{
		roles: roles,
		users: users,
	}
}

// Execute combines the permission maps of the user's roles in scope into
// one map. Root users combine every role in scope. Stored maps are
// already read-normalized, so the union needs no further normalization.
func (uc *GetUserPermissionsUseCase) Execute(ctx context.Context, query GetUserPermissionsQuery) (permission.Map, *common.UseCaseError) {
	if query.UserID == "" {
		return nil, common.ValidationError("MISSING_USER_ID", "User ID is required", nil)
	}

	u, err := uc.users.FindByID(ctx, query.UserID)
	if err != nil {
		return nil, common.InternalError(common.ErrCodeDBError, "Failed to find user", map[string]any{"error": err.Error()})
	}
	if u == nil {
		return nil, common.NotFoundError(common.ErrCodeUserNotFound, "User not found", map[string]any{"id": query.UserID})
	}

	scope := role.Scope{CompanyID: query.CompanyID, Service: query.Service}
	var groups []*role.Group
	if u.IsRoot {
		groups, err = uc.roles.FindByScope(ctx, scope)
	} else {
		groups, err = uc.roles.FindByUser(ctx, query.UserID, scope)
	}
	if err != nil {
		return nil, common.InternalError(common.ErrCodeDBError, "Failed to list roles", map[string]any{"error": err.Error()})
	}

	maps := make([]permission.Map, 0, len(groups))
	for _, g := range groups {
		maps = append(maps, g.Permissions)
	}
	return permission.Combine(maps...), nil
}
