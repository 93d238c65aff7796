package operations

import (
	"context"
	"time"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/company"
	"go.accessdeck.tech/internal/platform/events"
	"go.accessdeck.tech/internal/platform/permission"
	"go.accessdeck.tech/internal/platform/role"
)

// UpdateRoleCommand contains the data needed to update a role. Company
// and service are required and may move the role to another scope; an
// omitted permission map resets the role to no permissions.
type UpdateRoleCommand struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	CompanyID   string         `json:"company"`
	Service     string         `json:"service"`
	Permissions permission.Map `json:"permissions,omitempty"`
}

// UpdateRoleUseCase handles updating a role
type UpdateRoleUseCase struct {
	companies  company.Repository
	tracker    *role.Tracker
	unitOfWork common.UnitOfWork
}

// NewUpdateRoleUseCase creates a new UpdateRoleUseCase
func NewUpdateRoleUseCase(companies company.Repository, tracker *role.Tracker, uow common.UnitOfWork) *UpdateRoleUseCase {
	return &UpdateRoleUseCase{
		companies:  companies,
		tracker:    tracker,
		unitOfWork: uow,
	}
}

// Execute updates a role's name, scope and permissions. Root roles
// reject updates; rootness and membership are never touched here.
func (uc *UpdateRoleUseCase) Execute(
	ctx context.Context,
	cmd UpdateRoleCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	// Validation
	if cmd.ID == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_ID", "Role ID is required", nil),
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

	// The guard runs against the target company, which may differ from
	// the role's current one.
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

	existing, ucErr := uc.tracker.AssertNotRoot(ctx, cmd.ID)
	if ucErr != nil {
		return common.Failure[common.DomainEvent](ucErr)
	}

	if cmd.Name != "" {
		existing.Name = cmd.Name
	}
	existing.CompanyID = cmd.CompanyID
	existing.Service = cmd.Service
	existing.Permissions = permission.Normalize(cmd.Permissions)
	existing.UpdatedAt = time.Now()

	event := events.NewRoleUpdated(execCtx, existing)

	result := uc.unitOfWork.CommitWithCompanyID(ctx, existing, event, cmd, existing.CompanyID)
	if isNameConflict(result) {
		return common.Failure[common.DomainEvent](
			common.ValidationError(common.ErrCodeDuplicateRole,
				"A role with this name already exists for the company and service",
				map[string]any{"name": existing.Name, "company": existing.CompanyID, "service": existing.Service}),
		)
	}
	return result
}
