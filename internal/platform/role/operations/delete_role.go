package operations

import (
	"context"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/events"
	"go.accessdeck.tech/internal/platform/role"
)

// DeleteRoleCommand contains the data needed to delete a role
type DeleteRoleCommand struct {
	ID string `json:"id"`
}

// DeleteRoleUseCase handles deleting a role
type DeleteRoleUseCase struct {
	tracker    *role.Tracker
	unitOfWork common.UnitOfWork
}

// NewDeleteRoleUseCase creates a new DeleteRoleUseCase
func NewDeleteRoleUseCase(tracker *role.Tracker, uow common.UnitOfWork) *DeleteRoleUseCase {
	return &DeleteRoleUseCase{
		tracker:    tracker,
		unitOfWork: uow,
	}
}

// Execute deletes a role. Root roles reject deletion.
func (uc *DeleteRoleUseCase) Execute(
	ctx context.Context,
	cmd DeleteRoleCommand,
	execCtx *common.ExecutionContext,
) common.Result[common.DomainEvent] {
	// Validation
	if cmd.ID == "" {
		return common.Failure[common.DomainEvent](
			common.ValidationError("MISSING_ID", "Role ID is required", nil),
		)
	}

	existing, ucErr := uc.tracker.AssertNotRoot(ctx, cmd.ID)
	if ucErr != nil {
		return common.Failure[common.DomainEvent](ucErr)
	}

	// Create domain event before deletion
	event := events.NewRoleDeleted(execCtx, existing)

	// Atomic commit with delete
	return uc.unitOfWork.CommitDelete(ctx, existing, event, cmd)
}
