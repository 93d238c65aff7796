package common

import "context"

// MemoryUnitOfWork implements UnitOfWork without a store. It backs
// embedded/dev mode and use case tests: persistence is delegated to
// callbacks and committed events are recorded in order.
//
// It lives in this package so it can mint successful Results; the commit
// discipline (event recorded only when persistence succeeded) is preserved.
type MemoryUnitOfWork struct {
	// OnPersist is invoked for each aggregate a commit would upsert.
	// A returned *UseCaseError is surfaced as the commit failure; any
	// other error becomes an internal commit failure.
	OnPersist func(aggregate any) error

	// OnDelete is invoked for each aggregate a commit would delete.
	OnDelete func(aggregate any) error

	// Events holds every committed domain event in commit order.
	Events []DomainEvent

	// Commands holds the command paired with each committed event.
	Commands []any
}

// NewMemoryUnitOfWork creates a MemoryUnitOfWork with no-op persistence.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{}
}

func (uow *MemoryUnitOfWork) Commit(ctx context.Context, aggregate any, event DomainEvent, command any) Result[DomainEvent] {
	return uow.CommitWithCompanyID(ctx, aggregate, event, command, "")
}

func (uow *MemoryUnitOfWork) CommitWithCompanyID(ctx context.Context, aggregate any, event DomainEvent, command any, companyID string) Result[DomainEvent] {
	if uow.OnPersist != nil {
		if err := uow.OnPersist(aggregate); err != nil {
			return Failure[DomainEvent](asUseCaseError(err))
		}
	}
	uow.record(event, command)
	return newSuccess[DomainEvent](event)
}

func (uow *MemoryUnitOfWork) CommitDelete(ctx context.Context, aggregate any, event DomainEvent, command any) Result[DomainEvent] {
	if uow.OnDelete != nil {
		if err := uow.OnDelete(aggregate); err != nil {
			return Failure[DomainEvent](asUseCaseError(err))
		}
	}
	uow.record(event, command)
	return newSuccess[DomainEvent](event)
}

func (uow *MemoryUnitOfWork) CommitWork(ctx context.Context, work func(txCtx context.Context) error, event DomainEvent, command any) Result[DomainEvent] {
	if err := work(ctx); err != nil {
		return Failure[DomainEvent](asUseCaseError(err))
	}
	uow.record(event, command)
	return newSuccess[DomainEvent](event)
}

func (uow *MemoryUnitOfWork) record(event DomainEvent, command any) {
	uow.Events = append(uow.Events, event)
	uow.Commands = append(uow.Commands, command)
}

// LastEvent returns the most recently committed event, or nil.
func (uow *MemoryUnitOfWork) LastEvent() DomainEvent {
	if len(uow.Events) == 0 {
		return nil
	}
	return uow.Events[len(uow.Events)-1]
}

func asUseCaseError(err error) *UseCaseError {
	if uce, ok := err.(*UseCaseError); ok {
		return uce
	}
	return InternalError(ErrCodeCommitFailed, "Commit failed: "+err.Error(), nil)
}
