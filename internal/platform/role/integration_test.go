//go:build integration

// Integration tests backed by a real MongoDB container. They verify the
// repository queries and the unique indexes the role invariants rest on.
// Requires Docker.
package role

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	storemongo "go.accessdeck.tech/internal/common/mongo"
	"go.accessdeck.tech/internal/common/repository"
	"go.accessdeck.tech/internal/config"
	"go.accessdeck.tech/internal/platform/permission"
)

func startMongo(ctx context.Context, t *testing.T) *storemongo.Client {
	t.Helper()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	client, err := storemongo.Connect(ctx, config.MongoDBConfig{
		URI:      uri,
		Database: "accessdeck_test",
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() {
		client.Disconnect(context.Background())
	})

	if err := storemongo.NewIndexInitializer(client).Initialize(ctx); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}
	return client
}

func TestMongoRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	client := startMongo(ctx, t)
	repo := NewRepository(client.Database())

	admin := &Group{
		Name: "admin", CompanyID: "comp-1", Service: "iam",
		Kind: KindRole, IsRoot: true,
		Permissions: permission.Map{"user": {permission.ActionRead, permission.ActionUpdate}},
		Users:       []string{"u-1"},
	}
	editor := &Group{
		Name: "editor", CompanyID: "comp-1", Service: "iam",
		Kind:  KindRole,
		Users: []string{"u-1", "u-2"},
	}
	team := &Group{Name: "everyone", CompanyID: "comp-1", Service: "iam"}

	for _, g := range []*Group{admin, editor, team} {
		if err := repo.Insert(ctx, g); err != nil {
			t.Fatalf("Insert %s: %v", g.Name, err)
		}
		if g.ID == "" {
			t.Fatalf("Insert %s: no ID assigned", g.Name)
		}
	}

	t.Run("duplicate name in scope", func(t *testing.T) {
		err := repo.Insert(ctx, &Group{Name: "admin", CompanyID: "comp-1", Service: "iam", Kind: KindRole})
		if !errors.Is(err, repository.ErrDuplicateKey) {
			t.Errorf("err = %v, want ErrDuplicateKey", err)
		}
	})

	t.Run("same name in another scope", func(t *testing.T) {
		other := &Group{Name: "admin", CompanyID: "comp-2", Service: "iam", Kind: KindRole}
		if err := repo.Insert(ctx, other); err != nil {
			t.Errorf("Insert: %v", err)
		}
	})

	t.Run("second root role in scope rejected by index", func(t *testing.T) {
		second := &Group{Name: "admin2", CompanyID: "comp-1", Service: "iam", Kind: KindRole, IsRoot: true}
		err := repo.Insert(ctx, second)
		if err == nil {
			t.Fatal("expected duplicate key error")
		}
		if !storemongo.IsDuplicateKeyError(err) {
			t.Fatalf("err = %v, want duplicate key", err)
		}
		if got := storemongo.DuplicateKeyIndex(err); got != storemongo.IndexRootRole {
			t.Errorf("violated index = %q, want %q", got, storemongo.IndexRootRole)
		}
	})

	t.Run("non-root roles are not constrained by the root index", func(t *testing.T) {
		extra := &Group{Name: "viewer", CompanyID: "comp-1", Service: "iam", Kind: KindRole}
		if err := repo.Insert(ctx, extra); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	})

	t.Run("scope queries honor the discriminator", func(t *testing.T) {
		roles, err := repo.FindByScope(ctx, Scope{CompanyID: "comp-1", Service: "iam"})
		if err != nil {
			t.Fatalf("FindByScope: %v", err)
		}
		for _, g := range roles {
			if !g.IsRole() {
				t.Errorf("FindByScope returned plain group %s", g.Name)
			}
		}

		groups, err := repo.FindGroupsByScope(ctx, Scope{CompanyID: "comp-1"})
		if err != nil {
			t.Fatalf("FindGroupsByScope: %v", err)
		}
		if len(groups) != 1 || groups[0].Name != "everyone" {
			t.Errorf("plain groups = %v", ProjectAll(groups))
		}

		count, err := repo.CountRolesByScope(ctx, Scope{CompanyID: "comp-1", Service: "iam"})
		if err != nil {
			t.Fatalf("CountRolesByScope: %v", err)
		}
		if count != 3 {
			t.Errorf("count = %d, want 3", count)
		}
	})

	t.Run("membership query", func(t *testing.T) {
		got, err := repo.FindByUser(ctx, "u-2", Scope{CompanyID: "comp-1"})
		if err != nil {
			t.Fatalf("FindByUser: %v", err)
		}
		if len(got) != 1 || got[0].ID != editor.ID {
			t.Errorf("roles of u-2 = %v", ProjectAll(got))
		}
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, admin.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got == nil || got.Name != "admin" || !got.IsRoot {
			t.Errorf("got = %+v", got)
		}

		missing, err := repo.FindByID(ctx, "nope")
		if err != nil {
			t.Fatalf("FindByID missing: %v", err)
		}
		if missing != nil {
			t.Errorf("missing = %+v, want nil", missing)
		}
	})

	t.Run("update", func(t *testing.T) {
		editor.Name = "publisher"
		editor.Permissions = permission.Map{"article": {permission.ActionRead}}
		if err := repo.Update(ctx, editor); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.FindByID(ctx, editor.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Name != "publisher" || !got.Permissions.Has("article", permission.ActionRead) {
			t.Errorf("got = %+v", got)
		}

		ghost := &Group{ID: "nope", Name: "ghost", CompanyID: "c", Service: "s", Kind: KindRole}
		if err := repo.Update(ctx, ghost); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("membership sync", func(t *testing.T) {
		scope := Scope{CompanyID: "comp-1", Service: "iam"}
		if err := repo.PullUserFromRoles(ctx, "u-1", scope); err != nil {
			t.Fatalf("PullUserFromRoles: %v", err)
		}
		if err := repo.AddUserToRoles(ctx, "u-1", []string{admin.ID, "nope"}, scope); err != nil {
			t.Fatalf("AddUserToRoles: %v", err)
		}

		got, err := repo.FindByUser(ctx, "u-1", scope)
		if err != nil {
			t.Fatalf("FindByUser: %v", err)
		}
		if len(got) != 1 || got[0].ID != admin.ID {
			t.Errorf("roles of u-1 = %v", ProjectAll(got))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, editor.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got, err := repo.FindByID(ctx, editor.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got != nil {
			t.Errorf("deleted role still present: %+v", got)
		}
	})
}
