package operations

import (
	"context"
	"testing"

	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/role"
	"go.accessdeck.tech/internal/platform/user"
)

func listingFixture() (*fakeRoles, *fakeUsers) {
	roles := newFakeRoles(
		&role.Group{ID: "r-1", Name: "admin", CompanyID: "comp-1", Service: "svc-a",
			Kind: role.KindRole, IsRoot: true, Users: []string{"u-member"}},
		&role.Group{ID: "r-2", Name: "editor", CompanyID: "comp-1", Service: "svc-a",
			Kind: role.KindRole},
		&role.Group{ID: "r-3", Name: "viewer", CompanyID: "comp-1", Service: "svc-b",
			Kind: role.KindRole, Users: []string{"u-member"}},
		&role.Group{ID: "r-4", Name: "admin", CompanyID: "comp-2", Service: "svc-a",
			Kind: role.KindRole},
		// Plain group, never listed as a role.
		&role.Group{ID: "g-1", Name: "everyone", CompanyID: "comp-1", Service: "svc-a"},
	)
	users := &fakeUsers{users: map[string]*user.User{
		"u-member": {ID: "u-member"},
		"u-root":   {ID: "u-root", IsRoot: true},
	}}
	return roles, users
}

func ids(projections []role.Projection) []string {
	out := make([]string, 0, len(projections))
	for _, p := range projections {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetRoles(t *testing.T) {
	roles, users := listingFixture()
	uc := NewGetRolesUseCase(roles, users)

	tests := []struct {
		name    string
		query   GetRolesQuery
		wantIDs []string
	}{
		{
			name:    "company and service scope",
			query:   GetRolesQuery{CompanyID: "comp-1", Service: "svc-a"},
			wantIDs: []string{"r-1", "r-2"},
		},
		{
			name:    "company scope spans services",
			query:   GetRolesQuery{CompanyID: "comp-1"},
			wantIDs: []string{"r-1", "r-2", "r-3"},
		},
		{
			name:    "service scope spans companies",
			query:   GetRolesQuery{Service: "svc-a"},
			wantIDs: []string{"r-1", "r-4", "r-2"},
		},
		{
			name:    "membership filter",
			query:   GetRolesQuery{CompanyID: "comp-1", UserID: "u-member"},
			wantIDs: []string{"r-1", "r-3"},
		},
		{
			name:    "root user sees the whole scope",
			query:   GetRolesQuery{CompanyID: "comp-1", Service: "svc-a", UserID: "u-root"},
			wantIDs: []string{"r-1", "r-2"},
		},
		{
			name:    "membership filter narrowed by service",
			query:   GetRolesQuery{CompanyID: "comp-1", Service: "svc-b", UserID: "u-member"},
			wantIDs: []string{"r-3"},
		},
		{
			name:    "no roles in scope",
			query:   GetRolesQuery{CompanyID: "comp-3"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ucErr := uc.Execute(context.Background(), tt.query)
			if ucErr != nil {
				t.Fatalf("unexpected error: %+v", ucErr)
			}
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}

func TestGetRolesUnknownUser(t *testing.T) {
	roles, users := listingFixture()
	uc := NewGetRolesUseCase(roles, users)

	_, ucErr := uc.Execute(context.Background(), GetRolesQuery{UserID: "nope"})
	if ucErr == nil || ucErr.Kind != common.ErrorKindNotFound {
		t.Fatalf("expected not found, got %+v", ucErr)
	}
	if ucErr.Code != common.ErrCodeUserNotFound {
		t.Errorf("code = %q, want %q", ucErr.Code, common.ErrCodeUserNotFound)
	}
}

func TestGetRolesProjectionHidesMembership(t *testing.T) {
	roles, users := listingFixture()
	uc := NewGetRolesUseCase(roles, users)

	got, ucErr := uc.Execute(context.Background(), GetRolesQuery{CompanyID: "comp-1", Service: "svc-a"})
	if ucErr != nil {
		t.Fatalf("unexpected error: %+v", ucErr)
	}
	for _, p := range got {
		if p.Permissions == nil {
			t.Errorf("role %s: permissions must never be nil in the projection", p.ID)
		}
	}
	if !got[0].IsRoot {
		t.Error("root role must project IsRoot")
	}
}
