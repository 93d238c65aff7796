package user

import (
	"context"

	"go.accessdeck.tech/internal/common/repository"
)

const collectionName = "auth_users"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*User, error) {
		return r.inner.FindByID(ctx, id)
	})
}
