package events

import (
	"go.accessdeck.tech/internal/platform/common"
	"go.accessdeck.tech/internal/platform/permission"
	"go.accessdeck.tech/internal/platform/role"
)

// RoleCreated is emitted when a new role is created
type RoleCreated struct {
	common.BaseDomainEvent
	RoleID      string         `json:"roleId"`
	Name        string         `json:"name"`
	CompanyID   string         `json:"companyId"`
	Service     string         `json:"service"`
	Permissions permission.Map `json:"permissions,omitempty"`
	IsRoot      bool           `json:"isRoot"`
}

func (e *RoleCreated) ToDataJSON() string {
	return common.MarshalDataJSON(struct {
		RoleID      string         `json:"roleId"`
		Name        string         `json:"name"`
		CompanyID   string         `json:"companyId"`
		Service     string         `json:"service"`
		Permissions permission.Map `json:"permissions,omitempty"`
		IsRoot      bool           `json:"isRoot"`
	}{
		RoleID:      e.RoleID,
		Name:        e.Name,
		CompanyID:   e.CompanyID,
		Service:     e.Service,
		Permissions: e.Permissions,
		IsRoot:      e.IsRoot,
	})
}

func NewRoleCreated(ctx *common.ExecutionContext, g *role.Group) *RoleCreated {
	return &RoleCreated{
		BaseDomainEvent: newBase(ctx, EventTypeRoleCreated, "role", g.ID),
		RoleID:          g.ID,
		Name:            g.Name,
		CompanyID:       g.CompanyID,
		Service:         g.Service,
		Permissions:     g.Permissions,
		IsRoot:          g.IsRoot,
	}
}

// RoleUpdated is emitted when a role is updated
type RoleUpdated struct {
	common.BaseDomainEvent
	RoleID      string         `json:"roleId"`
	Name        string         `json:"name"`
	CompanyID   string         `json:"companyId"`
	Service     string         `json:"service"`
	Permissions permission.Map `json:"permissions,omitempty"`
}

func (e *RoleUpdated) ToDataJSON() string {
	return common.MarshalDataJSON(struct {
		RoleID      string         `json:"roleId"`
		Name        string         `json:"name"`
		CompanyID   string         `json:"companyId"`
		Service     string         `json:"service"`
		Permissions permission.Map `json:"permissions,omitempty"`
	}{
		RoleID:      e.RoleID,
		Name:        e.Name,
		CompanyID:   e.CompanyID,
		Service:     e.Service,
		Permissions: e.Permissions,
	})
}

func NewRoleUpdated(ctx *common.ExecutionContext, g *role.Group) *RoleUpdated {
	return &RoleUpdated{
		BaseDomainEvent: newBase(ctx, EventTypeRoleUpdated, "role", g.ID),
		RoleID:          g.ID,
		Name:            g.Name,
		CompanyID:       g.CompanyID,
		Service:         g.Service,
		Permissions:     g.Permissions,
	}
}

// RoleDeleted is emitted when a role is deleted
type RoleDeleted struct {
	common.BaseDomainEvent
	RoleID    string `json:"roleId"`
	Name      string `json:"name"`
	CompanyID string `json:"companyId"`
	Service   string `json:"service"`
}

func (e *RoleDeleted) ToDataJSON() string {
	return common.MarshalDataJSON(struct {
		RoleID    string `json:"roleId"`
		Name      string `json:"name"`
		CompanyID string `json:"companyId"`
		Service   string `json:"service"`
	}{
		RoleID:    e.RoleID,
		Name:      e.Name,
		CompanyID: e.CompanyID,
		Service:   e.Service,
	})
}

func NewRoleDeleted(ctx *common.ExecutionContext, g *role.Group) *RoleDeleted {
	return &RoleDeleted{
		BaseDomainEvent: newBase(ctx, EventTypeRoleDeleted, "role", g.ID),
		RoleID:          g.ID,
		Name:            g.Name,
		CompanyID:       g.CompanyID,
		Service:         g.Service,
	}
}

// UserRolesUpdated is emitted when a user's role memberships are replaced
// within a scope.
type UserRolesUpdated struct {
	common.BaseDomainEvent
	UserID    string   `json:"userId"`
	RoleIDs   []string `json:"roleIds"`
	CompanyID string   `json:"companyId,omitempty"`
	Service   string   `json:"service,omitempty"`
}

func (e *UserRolesUpdated) ToDataJSON() string {
	return common.MarshalDataJSON(struct {
		UserID    string   `json:"userId"`
		RoleIDs   []string `json:"roleIds"`
		CompanyID string   `json:"companyId,omitempty"`
		Service   string   `json:"service,omitempty"`
	}{
		UserID:    e.UserID,
		RoleIDs:   e.RoleIDs,
		CompanyID: e.CompanyID,
		Service:   e.Service,
	})
}

func NewUserRolesUpdated(ctx *common.ExecutionContext, userID string, roleIDs []string, companyID, service string) *UserRolesUpdated {
	return &UserRolesUpdated{
		BaseDomainEvent: newBase(ctx, EventTypeUserRolesUpdated, "user", userID),
		UserID:          userID,
		RoleIDs:         roleIDs,
		CompanyID:       companyID,
		Service:         service,
	}
}
