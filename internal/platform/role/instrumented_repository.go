package role

import (
	"context"

	"go.accessdeck.tech/internal/common/repository"
)

const collectionName = "auth_groups"

// instrumentedRepository wraps a Repository with metrics and logging
type instrumentedRepository struct {
	inner Repository
}

func newInstrumentedRepository(inner Repository) Repository {
	return &instrumentedRepository{inner: inner}
}

func (r *instrumentedRepository) FindByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	return repository.Instrument(ctx, collectionName, "FindByScope", func() ([]*Group, error) {
		return r.inner.FindByScope(ctx, scope)
	})
}

func (r *instrumentedRepository) FindGroupsByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	return repository.Instrument(ctx, collectionName, "FindGroupsByScope", func() ([]*Group, error) {
		return r.inner.FindGroupsByScope(ctx, scope)
	})
}

func (r *instrumentedRepository) FindByUser(ctx context.Context, userID string, scope Scope) ([]*Group, error) {
	return repository.Instrument(ctx, collectionName, "FindByUser", func() ([]*Group, error) {
		return r.inner.FindByUser(ctx, userID, scope)
	})
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	return repository.Instrument(ctx, collectionName, "FindByID", func() (*Group, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *instrumentedRepository) CountRolesByScope(ctx context.Context, scope Scope) (int64, error) {
	return repository.Instrument(ctx, collectionName, "CountRolesByScope", func() (int64, error) {
		return r.inner.CountRolesByScope(ctx, scope)
	})
}

func (r *instrumentedRepository) Insert(ctx context.Context, g *Group) error {
	return repository.InstrumentVoid(ctx, collectionName, "Insert", func() error {
		return r.inner.Insert(ctx, g)
	})
}

func (r *instrumentedRepository) Update(ctx context.Context, g *Group) error {
	return repository.InstrumentVoid(ctx, collectionName, "Update", func() error {
		return r.inner.Update(ctx, g)
	})
}

func (r *instrumentedRepository) Delete(ctx context.Context, id string) error {
	return repository.InstrumentVoid(ctx, collectionName, "Delete", func() error {
		return r.inner.Delete(ctx, id)
	})
}

func (r *instrumentedRepository) PullUserFromRoles(ctx context.Context, userID string, scope Scope) error {
	return repository.InstrumentVoid(ctx, collectionName, "PullUserFromRoles", func() error {
		return r.inner.PullUserFromRoles(ctx, userID, scope)
	})
}

func (r *instrumentedRepository) AddUserToRoles(ctx context.Context, userID string, roleIDs []string, scope Scope) error {
	return repository.InstrumentVoid(ctx, collectionName, "AddUserToRoles", func() error {
		return r.inner.AddUserToRoles(ctx, userID, roleIDs, scope)
	})
}
