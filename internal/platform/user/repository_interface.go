package user

import "context"

// Repository defines read-only access to user data.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	// FindByID returns the user or nil when it does not exist.
	FindByID(ctx context.Context, id string) (*User, error)
}
