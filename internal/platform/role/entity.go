// Package role holds the Group/Role data model and its persistence.
//
// A Role is a variant of Group distinguished by the kind discriminator;
// plain groups carry membership without permissions. The variant is
// modeled as a tagged record with a narrowing accessor rather than an
// embedded hierarchy.
package role

import (
	"time"

	"go.accessdeck.tech/internal/platform/permission"
)

// Kind is the discriminator tag on a Group document.
type Kind string

// KindRole marks a group that is a role. Plain groups leave the tag
// unset.
const KindRole Kind = "Role"

// Group is a named collection of users scoped to a company and a
// service. (name, companyId, service) is unique; the store enforces it.
//
// Role-only fields (Permissions, IsRoot) are populated only when
// Kind == KindRole.
//
// Collection: auth_groups
type Group struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CompanyID string    `bson:"companyId" json:"company"`
	Service   string    `bson:"service" json:"service"`
	Users     []string  `bson:"users,omitempty" json:"-"`
	Kind      Kind      `bson:"kind,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Role variant fields
	Permissions permission.Map `bson:"permissions,omitempty" json:"permissions,omitempty"`

	// IsRoot marks the first role ever created for the (company,
	// service) pair. Once set it is never cleared; root roles reject
	// update and delete.
	IsRoot bool `bson:"isRoot,omitempty" json:"isRoot,omitempty"`
}

// AggregateID implements common.AggregateRoot.
func (g *Group) AggregateID() string { return g.ID }

// CollectionName implements common.AggregateRoot.
func (g *Group) CollectionName() string { return "auth_groups" }

// IsRole reports whether this group carries the role variant.
func (g *Group) IsRole() bool { return g.Kind == KindRole }

// Role is the narrowed view of a role-kind group.
type Role struct {
	*Group
}

// AsRole narrows a group to its role variant. The second return is false
// for plain groups.
func (g *Group) AsRole() (Role, bool) {
	if !g.IsRole() {
		return Role{}, false
	}
	return Role{Group: g}, true
}

// HasUser reports whether userID is a member of the group.
func (g *Group) HasUser(userID string) bool {
	for _, u := range g.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// AddUser adds userID to the membership set if not already present.
func (g *Group) AddUser(userID string) {
	if !g.HasUser(userID) {
		g.Users = append(g.Users, userID)
	}
}

// RemoveUser removes userID from the membership set.
func (g *Group) RemoveUser(userID string) {
	out := g.Users[:0]
	for _, u := range g.Users {
		if u != userID {
			out = append(out, u)
		}
	}
	g.Users = out
}

// Projection is the public shape of a role: the membership set and the
// discriminator tag are never exposed directly.
type Projection struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	CompanyID   string         `json:"company"`
	Service     string         `json:"service"`
	Permissions permission.Map `json:"permissions"`
	IsRoot      bool           `json:"isRoot"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Project returns the public projection of the group.
func (g *Group) Project() Projection {
	perms := g.Permissions
	if perms == nil {
		perms = permission.Map{}
	}
	return Projection{
		ID:          g.ID,
		Name:        g.Name,
		CompanyID:   g.CompanyID,
		Service:     g.Service,
		Permissions: perms,
		IsRoot:      g.IsRoot,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ProjectAll maps a slice of groups to their public projections.
func ProjectAll(groups []*Group) []Projection {
	out := make([]Projection, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Project())
	}
	return out
}
