package operations

import (
	"context"
	"time"

	"github.com/google/uuid"

	storemongo "go.accessdeck.tech/internal/common/mongo"
	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/company"
	"go.accessdeck.tech/internal/platform/events"
	"go.accessdeck.tech/internal/platform/permission"
	"go.accessdeck.tech/internal/platform/role"
)

// CreateRoleCommand contains the data needed to create a role
type CreateRoleCommand struct {
	Name        string         `json:"name"`
	CompanyID   string         `json:"company"`
	Service     string         `json:"service"`
	Permissions permission.Map `json:"permissions,omitempty"`
}

// CreateRoleUseCase handles creating a new role
type CreateRoleUseCase struct {
	companies  company.Repository
	tracker    *role.Tracker
	unitOfWork common.UnitOfWork
}

// NewCreateRoleUseCase creates a new CreateRoleUseCase
func NewCreateRoleUseCase(companies company.Repository, tracker *role.Tracker, uow common.UnitOfWork) *CreateRoleUseCase {
	return &CreateRoleUseCase{
		companies:  companies,
		tracker:    tracker,
		unitOfWork: uow,
	}
}

// Execute creates a new role. The first role created for a (company,
// service) pair becomes the root role; concurrent first creates are
// arbitrated by the root-role unique index, and the loser is committed
// again as a regular role.
func (uc *CreateRoleUseCase) Execute(
	ctx context.Context,
	cmd CreateRoleCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	// Validation
	if cmd.Name == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_NAME", "Role name is required", nil),
		)
	}
	if cmd.CompanyID == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_COMPANY_ID", "Company ID is required", nil),
		)
	}
	if cmd.Service == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_SERVICE", "Service is required", nil),
		)
	}
	if err := cmd.Permissions.Validate(); err != nil {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeInvalidAction,
				"Unknown permission action",
				map[string]any{"error": err.Error()}),
		)
	}

	// The company must exist, and company-resource permissions are
	// restricted to resellers.
	comp, err := uc.companies.FindByID(ctx, cmd.CompanyID)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.InternalError(common.ErrCodeDBError, "Failed to find company", map[string]any{"error": err.Error()}),
		)
	}
	if comp == nil {
		return common.Failure[common.DomainEvent](
			common.NotFoundError(common.ErrCodeCompanyNotFound, "Company not found", map[string]any{"id": cmd.CompanyID}),
		)
	}
	if ucErr := role.ValidateCompanyPermissions(comp, cmd.Permissions); ucErr != nil {
		return common.Failure[common.DomainEvent](ucErr)
	}

	isFirst, err := uc.tracker.IsFirstRole(ctx, cmd.CompanyID, cmd.Service)
	if err != nil {
		return common.Failure[common.DomainEvent](
			common.InternalError(common.ErrCodeDBError, "Failed to count existing roles", map[string]any{"error": err.Error()}),
		)
	}

	now := time.Now()
	g := &role.Group{
		ID:          uuid.NewString(),
		Name:        cmd.Name,
		CompanyID:   cmd.CompanyID,
		Service:     cmd.Service,
		Kind:        role.KindRole,
		Permissions: permission.Normalize(cmd.Permissions),
		IsRoot:      isFirst,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result := uc.commit(ctx, g, cmd, execCtx)

	// Another create won the root-role index between the count and the
	// commit. Retry once as a regular role.
	if isFirst && isRootIndexConflict(result) {
		g.IsRoot = false
		result = uc.commit(ctx, g, cmd, execCtx)
	}

	if isNameConflict(result) {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeDuplicateRole,
				"A role with this name already exists for the company and service",
				map[string]any{"name": cmd.Name, "company": cmd.CompanyID, "service": cmd.Service}),
		)
	}
	return result
}

func (uc *CreateRoleUseCase) commit(
	ctx context.Context,
	g *role.Group,
	cmd CreateRoleCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	event := events.NewRoleCreated(execCtx, g)
	return uc.unitOfWork.CommitWithCompanyID(ctx, g, event, cmd, g.CompanyID)
}

// isRootIndexConflict reports whether a commit failed on the root-role
// unique index.
func isRootIndexConflict(result common.Result[common.DomainEvent]) bool {
	if result.IsSuccess() {
		return false
	}
	err := result.Error()
	return err.Code == common.ErrCodeDuplicateKey && err.Detail("index") == storemongo.IndexRootRole
}

// isNameConflict reports whether a commit failed on the group name
// unique index.
func isNameConflict(result common.Result[common.DomainEvent]) bool {
	if result.IsSuccess() {
		return false
	}
	err := result.Error()
	return err.Code == common.ErrCodeDuplicateKey && err.Detail("index") == storemongo.IndexGroupScopeName
}
