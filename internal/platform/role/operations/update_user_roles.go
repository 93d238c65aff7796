package operations

import (
	"context"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/events"
	"go.accessdeck.tech/internal/platform/role"
	"go.accessdeck.tech/internal/platform/user"
)

// UpdateUserRolesCommand replaces a user's role memberships within an
// optional (company, service) scope. RoleIDs is the complete desired
// set; an empty set removes the user from every role in scope. Role ids
// that do not exist or fall outside the scope are silently ignored.
type UpdateUserRolesCommand struct {
	UserID    string   `json:"userId"`
	RoleIDs   []string `json:"roleIds"`
	CompanyID string   `json:"company,omitempty"`
	Service   string   `json:"service,omitempty"`
}

// UpdateUserRolesUseCase handles replacing a user's role memberships
type UpdateUserRolesUseCase struct {
	roles      role.Repository
	users      user.Repository
	unitOfWork common.UnitOfWork
}

// NewUpdateUserRolesUseCase creates a new UpdateUserRolesUseCase
func NewUpdateUserRolesUseCase(roles role.Repository, users user.Repository, uow common.UnitOfWork) *UpdateUserRolesUseCase {
	return &UpdateUserRolesUseCase{
		roles:      roles,
		users:      users,
		unitOfWork: uow,
	}
}

// Execute replaces the user's memberships in scope. The removal from
// current roles and the addition to the desired roles run in one store
// transaction, so readers never observe the user stripped of all roles
// mid-update. The committed event carries the role ids that were
// actually applied. To read the post-update role set, follow up with
// GetRolesUseCase and GetRolesQuery{CompanyID: cmd.CompanyID,
// Service: cmd.Service, UserID: cmd.UserID}.
func (uc *UpdateUserRolesUseCase) Execute(
	ctx context.Context,
	cmd UpdateUserRolesCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	// Validation
	if cmd.UserID == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_USER_ID", "User ID is required", nil),
		)
	}

	u, err := uc.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.InternalError(common.ErrCodeDBError, "Failed to find user", map[string]any{"error": err.Error()}),
		)
	}
	if u == nil {
		return common.Failure[common.DomainEvent](
			common.NotFoundError(common.ErrCodeUserNotFound, "User not found", map[string]any{"id": cmd.UserID}),
		)
	}

	scope := role.Scope{CompanyID: cmd.CompanyID, Service: cmd.Service}

	// Ids outside the scope or unknown are dropped, not reported.
	applied := make([]string, 0, len(cmd.RoleIDs))
	for _, id := range cmd.RoleIDs {
		g, err := uc.roles.FindByID(ctx, id)
		if err != nil {
			return common.Failure[common.DomainEvent](
				common.InternalError(common.ErrCodeDBError, "Failed to find role", map[string]any{"error": err.Error()}),
			)
		}
		if g == nil || !g.IsRole() {
			continue
		}
		if scope.CompanyID != "" && g.CompanyID != scope.CompanyID {
			continue
		}
		if scope.Service != "" && g.Service != scope.Service {
			continue
		}
		applied = append(applied, id)
	}

	event := events.NewUserRolesUpdated(execCtx, cmd.UserID, applied, cmd.CompanyID, cmd.Service)

	return uc.unitOfWork.CommitWork(ctx, func(txCtx context.Context) error {
		if err := uc.roles.PullUserFromRoles(txCtx, cmd.UserID, scope); err != nil {
			return err
		}
		return uc.roles.AddUserToRoles(txCtx, cmd.UserID, applied, scope)
	}, event, cmd)
}
