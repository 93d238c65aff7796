// Package common provides the core infrastructure for the
// UseCase/UnitOfWork pattern: use case results, error taxonomy, execution
// context, domain events, and the transactional unit of work.
package common

// Result represents the outcome of a mutating use case.
//
// The success constructor (newSuccess) is unexported: only the UnitOfWork
// implementations in this package can mint a successful Result. That is the
// enforcement mechanism guaranteeing every successful mutation persisted its
// aggregate, its domain event, and its audit log together.
type Result[T any] struct {
	value   T
	err     *UseCaseError
	success bool
}

// newSuccess creates a successful result. Unexported on purpose; see the
// type comment.
func newSuccess[T any](value T) Result[T] {
	return Result[T]{
		value:   value,
		success: true,
	}
}

// Failure creates a failed result. Any code can fail fast for validation
// errors or invariant violations without touching the unit of work.
func Failure[T any](err *UseCaseError) Result[T] {
	return Result[T]{
		err:     err,
		success: false,
	}
}

// IsSuccess returns true if the result is successful.
func (r Result[T]) IsSuccess() bool {
	return r.success
}

// IsFailure returns true if the result is a failure.
func (r Result[T]) IsFailure() bool {
	return !r.success
}

// Value returns the success value.
// Should only be called after checking IsSuccess().
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the error if the result is a failure, nil otherwise.
func (r Result[T]) Error() *UseCaseError {
	return r.err
}

// Match applies one of two functions depending on success/failure state.
func Match[T, U any](r Result[T], onSuccess func(T) U, onFailure func(*UseCaseError) U) U {
	if r.IsSuccess() {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}
