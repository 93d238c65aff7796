package role

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.accessdeck.tech/internal/common/repository"
)

// fakeRepository is an in-memory Repository for tests.
type fakeRepository struct {
	mu     sync.Mutex
	groups map[string]*Group

	// failWith, when set, is returned by every operation.
	failWith error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{groups: make(map[string]*Group)}
}

func (f *fakeRepository) matchesScope(g *Group, scope Scope) bool {
	if scope.CompanyID != "" && g.CompanyID != scope.CompanyID {
		return false
	}
	if scope.Service != "" && g.Service != scope.Service {
		return false
	}
	return true
}

func (f *fakeRepository) list(scope Scope, wantRole bool) []*Group {
	var out []*Group
	for _, g := range f.groups {
		if g.IsRole() != wantRole {
			continue
		}
		if f.matchesScope(g, scope) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeRepository) FindByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.list(scope, true), nil
}

func (f *fakeRepository) FindGroupsByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.list(scope, false), nil
}

func (f *fakeRepository) FindByUser(ctx context.Context, userID string, scope Scope) ([]*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []*Group
	for _, g := range f.list(scope, true) {
		if g.HasUser(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.groups[id], nil
}

func (f *fakeRepository) CountRolesByScope(ctx context.Context, scope Scope) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.list(scope, true))), nil
}

func (f *fakeRepository) Insert(ctx context.Context, g *Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.groups {
		if existing.Name == g.Name && existing.CompanyID == g.CompanyID && existing.Service == g.Service {
			return fmt.Errorf("%w: name", repository.ErrDuplicateKey)
		}
	}
	if g.ID == "" {
		g.ID = fmt.Sprintf("g-%d", len(f.groups)+1)
	}
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	f.groups[g.ID] = g
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, g *Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.groups[g.ID]; !ok {
		return repository.ErrNotFound
	}
	g.UpdatedAt = time.Now()
	f.groups[g.ID] = g
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.groups, id)
	return nil
}

func (f *fakeRepository) PullUserFromRoles(ctx context.Context, userID string, scope Scope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, g := range f.list(scope, true) {
		g.RemoveUser(userID)
	}
	return nil
}

func (f *fakeRepository) AddUserToRoles(ctx context.Context, userID string, roleIDs []string, scope Scope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	wanted := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = true
	}
	for _, g := range f.list(scope, true) {
		if wanted[g.ID] {
			g.AddUser(userID)
		}
	}
	return nil
}
