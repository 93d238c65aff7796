package operations

import (
	"context"
	"fmt"
	"sort"

	"go.accessdeck.tech/internal/common/repository"
	"go.accessdeck.tech/internal/platform/company"
	"go.accessdeck.tech/internal/platform/role"
	"go.accessdeck.tech/internal/platform/user"
)

type fakeCompanies struct {
	companies map[string]*company.Company
	err       error
}

func (f *fakeCompanies) FindByID(ctx context.Context, id string) (*company.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companies[id], nil
}

type fakeUsers struct {
	users map[string]*user.User
	err   error
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

// fakeRoles is an in-memory role.Repository.
type fakeRoles struct {
	groups map[string]*role.Group
	err    error
}

func newFakeRoles(groups ...*role.Group) *fakeRoles {
	f := &fakeRoles{groups: make(map[string]*role.Group)}
	for i, g := range groups {
		if g.ID == "" {
			g.ID = fmt.Sprintf("g-%d", i+1)
		}
		f.groups[g.ID] = g
	}
	return f
}

func (f *fakeRoles) inScope(g *role.Group, scope role.Scope) bool {
	if scope.CompanyID != "" && g.CompanyID != scope.CompanyID {
		return false
	}
	if scope.Service != "" && g.Service != scope.Service {
		return false
	}
	return true
}

func (f *fakeRoles) list(scope role.Scope, wantRole bool) []*role.Group {
	var out []*role.Group
	for _, g := range f.groups {
		if g.IsRole() == wantRole && f.inScope(g, scope) {
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

func (f *fakeRoles) FindByScope(ctx context.Context, scope role.Scope) ([]*role.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list(scope, true), nil
}

func (f *fakeRoles) FindGroupsByScope(ctx context.Context, scope role.Scope) ([]*role.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list(scope, false), nil
}

func (f *fakeRoles) FindByUser(ctx context.Context, userID string, scope role.Scope) ([]*role.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*role.Group
	for _, g := range f.list(scope, true) {
		if g.HasUser(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRoles) FindByID(ctx context.Context, id string) (*role.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups[id], nil
}

func (f *fakeRoles) CountRolesByScope(ctx context.Context, scope role.Scope) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.list(scope, true))), nil
}

func (f *fakeRoles) Insert(ctx context.Context, g *role.Group) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.groups {
		if existing.Name == g.Name && existing.CompanyID == g.CompanyID && existing.Service == g.Service {
			return fmt.Errorf("%w: name", repository.ErrDuplicateKey)
		}
	}
	if g.ID == "" {
		g.ID = fmt.Sprintf("g-%d", len(f.groups)+1)
	}
	f.groups[g.ID] = g
	return nil
}

func (f *fakeRoles) Update(ctx context.Context, g *role.Group) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.groups[g.ID]; !ok {
		return repository.ErrNotFound
	}
	f.groups[g.ID] = g
	return nil
}

func (f *fakeRoles) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.groups, id)
	return nil
}

func (f *fakeRoles) PullUserFromRoles(ctx context.Context, userID string, scope role.Scope) error {
	if f.err != nil {
		return f.err
	}
	for _, g := range f.list(scope, true) {
		g.RemoveUser(userID)
	}
	return nil
}

func (f *fakeRoles) AddUserToRoles(ctx context.Context, userID string, roleIDs []string, scope role.Scope) error {
	if f.err != nil {
		return f.err
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
