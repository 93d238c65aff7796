package operations

import (
	"context"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/role"
	"go.accessdeck.tech/internal/platform/user"
)

// GetRolesQuery narrows the role listing. All fields are optional; a
// zero query lists every role.
type GetRolesQuery struct {
	CompanyID string `json:"company,omitempty"`
	Service   string `json:"service,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

// GetRolesUseCase lists roles by scope and membership.
type GetRolesUseCase struct {
	roles role.Repository
	users user.Repository
}

// NewGetRolesUseCase creates a new GetRolesUseCase
func NewGetRolesUseCase(roles role.Repository, users user.Repository) *GetRolesUseCase {
	return &GetRolesUseCase{
		roles: roles,
		users: users,
	}
}

// Execute lists roles matching the query. When a user is named, the
// listing is narrowed to that user's memberships, except for root users
// who see every role in scope.
func (uc *GetRolesUseCase) Execute(ctx context.Context, query GetRolesQuery) ([]role.Projection, *common.UseCaseError) {
	scope := role.Scope{CompanyID: query.CompanyID, Service: query.Service}

	if query.UserID != "" {
		u, err := uc.users.FindByID(ctx, query.UserID)
		if err != nil {
			return nil, common.InternalError(common.ErrCodeDBError, "Failed to find user", map[string]any{"error": err.Error()})
		}
		if u == nil {
			return nil, common.NotFoundError(common.ErrCodeUserNotFound, "User not found", map[string]any{"id": query.UserID})
		}
		if !u.IsRoot {
			groups, err := uc.roles.FindByUser(ctx, query.UserID, scope)
			if err != nil {
				return nil, common.InternalError(common.ErrCodeDBError, "Failed to list roles", map[string]any{"error": err.Error()})
			}
			return role.ProjectAll(groups), nil
		}
		// Root users see everything in scope.
	}

	groups, err := uc.roles.FindByScope(ctx, scope)
	if err != nil {
		return nil, common.InternalError(common.ErrCodeDBError, "Failed to list roles", map[string]any{"error": err.Error()})
	}
	return role.ProjectAll(groups), nil
}
