package company

import (
	"context"

	"go.accessdeck.tech/internal/common/repository"
)

const collectionName = "companies"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*Company, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Company, error) {
		return r.inner.FindByID(ctx, id)
	})
}
