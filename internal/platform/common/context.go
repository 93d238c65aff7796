package common

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const executionCtxKey contextKey = "executionContext"

// ExecutionContext carries metadata about the current use case execution:
// who is acting and how this execution relates to the wider request chain.
// It flows into every domain event and audit log entry.
type ExecutionContext struct {
	// ExecutionID is a unique identifier for this specific execution.
	ExecutionID string

	// CorrelationID is the distributed tracing identifier, propagated
	// across service boundaries by the surrounding application.
	CorrelationID string

	// CausationID is the ID of the event that caused this execution.
	// Empty for root executions.
	CausationID string

	// PrincipalID identifies who is performing the action.
	PrincipalID string

	// InitiatedAt is when the execution started.
	InitiatedAt time.Time
}

// NewExecutionContext creates an execution context for a fresh request.
// The correlation ID starts out equal to the execution ID.
func NewExecutionContext(principalID string) *ExecutionContext {
	execID := "exec-" + uuid.NewString()
	return &ExecutionContext{
		ExecutionID:   execID,
		CorrelationID: execID,
		PrincipalID:   principalID,
		InitiatedAt:   time.Now(),
	}
}

// NewCausedExecutionContext creates an execution context that continues an
// existing trace, for executions triggered by upstream events.
func NewCausedExecutionContext(principalID, correlationID, causationID string) *ExecutionContext {
	ec := NewExecutionContext(principalID)
	if correlationID != "" {
		ec.CorrelationID = correlationID
	}
	ec.CausationID = causationID
	return ec
}

// WithExecutionContext stores the execution context in a Go context.
func WithExecutionContext(ctx context.Context, ec *ExecutionContext) context.Context {
	return context.WithValue(ctx, executionCtxKey, ec)
}

// ExecutionContextFromContext extracts the execution context from a Go
// context. Returns nil if none is present.
func ExecutionContextFromContext(ctx context.Context) *ExecutionContext {
	if ec, ok := ctx.Value(executionCtxKey).(*ExecutionContext); ok {
		return ec
	}
	return nil
}
