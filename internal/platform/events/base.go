// Package events defines the domain events of the authorization core.
// An event is emitted for every committed mutation.
package events

import (
	"fmt"

	"go.accessdeck.tech/internal/platform/common"
)

const (
	// SourceAccessControl is the event source for this subsystem
	SourceAccessControl = "idp:access-control"
)

// Event type codes follow the format: {app}:{domain}:{aggregate}:{action}

// Role event codes
const (
	EventTypeRoleCreated      = "idp:access-control:role:created"
	EventTypeRoleUpdated      = "idp:access-control:role:updated"
	EventTypeRoleDeleted      = "idp:access-control:role:deleted"
	EventTypeUserRolesUpdated = "idp:access-control:user:roles-updated"
)

// subject builds a subject string for domain events
// Format: {domain}.{aggregate}.{id}
func subject(aggregate, id string) string {
	return fmt.Sprintf("access.%s.%s", aggregate, id)
}

// newBase creates a BaseDomainEvent with standard settings
func newBase(ctx *common.ExecutionContext, eventType, aggregate, id string) common.BaseDomainEvent {
	return common.NewBaseDomainEvent(ctx, eventType, SourceAccessControl, subject(aggregate, id))
}
