package common

import "context"

// UnitOfWork is the only way to return a successful Result from a mutating
// use case. Each Commit method persists state, the domain event, and the
// audit log entry atomically; if any step fails the whole commit fails.
//
// Use cases fail fast with Failure(...) for validation and invariant
// violations, and end with exactly one Commit call on the happy path:
//
//	func (uc *CreateRoleUseCase) Execute(
//	    ctx context.Context,
//	    cmd CreateRoleCommand,
//	    execCtx *common.ExecutionContext,
//	) common.Result[common.DomainEvent] {
//	    if cmd.Name == "" {
//	        return common.Failure[common.DomainEvent](common.ValidationError(...))
//	    }
//	    g := &role.Group{...}
//	    event := events.NewRoleCreated(execCtx, g)
//	    return uc.unitOfWork.Commit(ctx, g, event, cmd)
//	}
type UnitOfWork interface {
	// Commit upserts an aggregate together with its domain event and an
	// audit log entry in a single store transaction.
	Commit(ctx context.Context, aggregate any, event DomainEvent, command any) Result[DomainEvent]

	// CommitWithCompanyID is Commit with the event scoped to a company.
	CommitWithCompanyID(ctx context.Context, aggregate any, event DomainEvent, command any, companyID string) Result[DomainEvent]

	// CommitDelete removes an aggregate together with its domain event
	// and audit log entry in a single store transaction.
	CommitDelete(ctx context.Context, aggregate any, event DomainEvent, command any) Result[DomainEvent]

	// CommitWork runs an arbitrary batch of repository writes inside one
	// store transaction, then records the domain event and audit entry in
	// the same transaction. The context passed to work is
	// transaction-scoped; repository calls made with it join the
	// transaction. Used by membership sync, where the write set spans
	// several role documents.
	CommitWork(ctx context.Context, work func(txCtx context.Context) error, event DomainEvent, command any) Result[DomainEvent]
}

// AggregateRoot is implemented by aggregates to expose their identity and
// backing collection to the unit of work.
type AggregateRoot interface {
	// AggregateID returns the unique identifier for this aggregate.
	AggregateID() string

	// CollectionName returns the store collection for this aggregate type.
	CollectionName() string
}

// Auditable is an optional interface commands implement to customize
// their audit log serialization (e.g. to redact fields).
type Auditable interface {
	ToAuditJSON() string
}
