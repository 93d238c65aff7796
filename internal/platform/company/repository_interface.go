package company

import "context"

// Repository defines read-only access to company data.
// All implementations must be wrapped with instrumentation.
type Repository interface {
	// FindByID returns the company or nil when it does not exist.
	FindByID(ctx context.Context, id string) (*Company, error)
}
