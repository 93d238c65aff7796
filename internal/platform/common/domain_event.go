package common

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement. The shape
// follows the CloudEvents specification for interoperability with the
// surrounding identity provider's event pipeline.
type DomainEvent interface {
	// EventID returns the unique identifier for this event.
	EventID() string

	// EventType returns the type code for this event.
	// Format: {app}:{domain}:{aggregate}:{action}
	// Example: "idp:access-control:role:created"
	EventType() string

	// SpecVersion returns the schema version of this event type.
	SpecVersion() string

	// Source returns the system that generated this event.
	Source() string

	// Subject returns the qualified aggregate identifier.
	// Format: {domain}.{aggregate}.{id}
	Subject() string

	// Time returns when the event occurred.
	Time() time.Time

	// CorrelationID returns the distributed tracing identifier.
	CorrelationID() string

	// CausationID returns the ID of the event that caused this event.
	CausationID() string

	// ExecutionID groups all events from one use case execution.
	ExecutionID() string

	// PrincipalID returns the ID of who initiated the action.
	PrincipalID() string

	// ToDataJSON serializes the event-specific payload to JSON.
	ToDataJSON() string
}

// BaseDomainEvent provides a base implementation of DomainEvent that
// concrete event types embed.
type BaseDomainEvent struct {
	ID          string    `json:"eventId" bson:"_id"`
	Type        string    `json:"eventType" bson:"type"`
	Version     string    `json:"specVersion" bson:"specVersion"`
	Src         string    `json:"source" bson:"source"`
	Subj        string    `json:"subject" bson:"subject"`
	Timestamp   time.Time `json:"time" bson:"time"`
	Correlation string    `json:"correlationId" bson:"correlationId"`
	Causation   string    `json:"causationId,omitempty" bson:"causationId,omitempty"`
	Execution   string    `json:"executionId" bson:"executionId"`
	Principal   string    `json:"principalId" bson:"principalId"`
}

// NewBaseDomainEvent creates a BaseDomainEvent populated from the
// execution context.
func NewBaseDomainEvent(ctx *ExecutionContext, eventType, source, subject string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Version:     "1.0",
		Src:         source,
		Subj:        subject,
		Timestamp:   time.Now(),
		Correlation: ctx.CorrelationID,
		Causation:   ctx.CausationID,
		Execution:   ctx.ExecutionID,
		Principal:   ctx.PrincipalID,
	}
}

func (e BaseDomainEvent) EventID() string       { return e.ID }
func (e BaseDomainEvent) EventType() string     { return e.Type }
func (e BaseDomainEvent) SpecVersion() string   { return e.Version }
func (e BaseDomainEvent) Source() string        { return e.Src }
func (e BaseDomainEvent) Subject() string       { return e.Subj }
func (e BaseDomainEvent) Time() time.Time       { return e.Timestamp }
func (e BaseDomainEvent) CorrelationID() string { return e.Correlation }
func (e BaseDomainEvent) CausationID() string   { return e.Causation }
func (e BaseDomainEvent) ExecutionID() string   { return e.Execution }
func (e BaseDomainEvent) PrincipalID() string   { return e.Principal }

// ToDataJSON returns an empty object for the base event.
// Concrete event types override this to include their payload.
func (e BaseDomainEvent) ToDataJSON() string {
	return "{}"
}

// PersistedEvent is a domain event as stored in the events collection,
// with searchable context metadata.
type PersistedEvent struct {
	ID            string        `bson:"_id" json:"id"`
	SpecVersion   string        `bson:"specVersion" json:"specVersion"`
	Type          string        `bson:"type" json:"type"`
	Source        string        `bson:"source" json:"source"`
	Subject       string        `bson:"subject" json:"subject"`
	Time          time.Time     `bson:"time" json:"time"`
	Data          string        `bson:"data" json:"data"`
	CorrelationID string        `bson:"correlationId" json:"correlationId"`
	CausationID   string        `bson:"causationId,omitempty" json:"causationId,omitempty"`
	ExecutionID   string        `bson:"executionId" json:"executionId"`
	ContextData   []ContextData `bson:"contextData" json:"contextData"`
	CompanyID     string        `bson:"companyId,omitempty" json:"companyId,omitempty"`
}

// ContextData represents searchable key-value metadata on an event.
type ContextData struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// ToPersistedEvent converts a DomainEvent to its stored form. companyID
// scopes the event to a tenant company and may be empty.
func ToPersistedEvent(event DomainEvent, companyID string) *PersistedEvent {
	contextData := []ContextData{
		{Key: "principalId", Value: event.PrincipalID()},
		{Key: "aggregateType", Value: extractAggregateType(event.Subject())},
	}
	if companyID != "" {
		contextData = append(contextData, ContextData{Key: "companyId", Value: companyID})
	}

	return &PersistedEvent{
		ID:            event.EventID(),
		SpecVersion:   event.SpecVersion(),
		Type:          event.EventType(),
		Source:        event.Source(),
		Subject:       event.Subject(),
		Time:          event.Time(),
		Data:          event.ToDataJSON(),
		CorrelationID: event.CorrelationID(),
		CausationID:   event.CausationID(),
		ExecutionID:   event.ExecutionID(),
		ContextData:   contextData,
		CompanyID:     companyID,
	}
}

// extractAggregateType returns the middle segment of a subject string.
// Subject format: {domain}.{aggregate}.{id}
func extractAggregateType(subject string) string {
	start := 0
	dots := 0
	for i, c := range subject {
		if c == '.' {
			dots++
			if dots == 1 {
				start = i + 1
			} else if dots == 2 {
				return subject[start:i]
			}
		}
	}
	if dots == 1 {
		return subject[start:]
	}
	return subject
}

// MarshalDataJSON serializes an event payload to JSON.
func MarshalDataJSON(data any) string {
	bytes, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(bytes)
}
