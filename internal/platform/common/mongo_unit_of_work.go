package common

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	storemongo "go.accessdeck.tech/internal/common/mongo"
)

// MongoUnitOfWork implements UnitOfWork on MongoDB transactions. Aggregate
// persistence, domain event creation, and audit logging happen atomically
// within one transaction.
type MongoUnitOfWork struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoUnitOfWork creates a MongoDB-backed UnitOfWork.
func NewMongoUnitOfWork(client *mongo.Client, db *mongo.Database) *MongoUnitOfWork {
	return &MongoUnitOfWork{
		client: client,
		db:     db,
	}
}

// Commit persists an aggregate with its domain event atomically.
func (uow *MongoUnitOfWork) Commit(
	ctx context.Context,
	aggregate any,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	return uow.CommitWithCompanyID(ctx, aggregate, event, command, "")
}

// CommitWithCompanyID persists an aggregate with a company-scoped event.
func (uow *MongoUnitOfWork) CommitWithCompanyID(
	ctx context.Context,
	aggregate any,
	event DomainEvent,
	command any,
	companyID string,
) Result[DomainEvent] {
	err := uow.inTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := uow.persistAggregate(sessCtx, aggregate); err != nil {
			return fmt.Errorf("persist aggregate: %w", err)
		}
		if err := uow.createEvent(sessCtx, event, companyID); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := uow.createAuditLog(sessCtx, event, command); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return Failure[DomainEvent](translateCommitError(err))
	}

	// Success can only be minted here, after the transaction committed.
	return newSuccess[DomainEvent](event)
}

// CommitDelete deletes an aggregate with its domain event atomically.
func (uow *MongoUnitOfWork) CommitDelete(
	ctx context.Context,
	aggregate any,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	err := uow.inTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := uow.deleteAggregate(sessCtx, aggregate); err != nil {
			return fmt.Errorf("delete aggregate: %w", err)
		}
		if err := uow.createEvent(sessCtx, event, ""); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := uow.createAuditLog(sessCtx, event, command); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return Failure[DomainEvent](translateCommitError(err))
	}

	return newSuccess[DomainEvent](event)
}

// CommitWork runs a batch of repository writes plus event and audit
// creation inside one transaction. The session context is handed to the
// work function as a plain context.Context; repository calls made with it
// join the transaction.
func (uow *MongoUnitOfWork) CommitWork(
	ctx context.Context,
	work func(txCtx context.Context) error,
	event DomainEvent,
	command any,
) Result[DomainEvent] {
	err := uow.inTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := work(sessCtx); err != nil {
			return err
		}
		if err := uow.createEvent(sessCtx, event, ""); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if err := uow.createAuditLog(sessCtx, event, command); err != nil {
			return fmt.Errorf("create audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return Failure[DomainEvent](translateCommitError(err))
	}

	return newSuccess[DomainEvent](event)
}

func (uow *MongoUnitOfWork) inTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := uow.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// translateCommitError maps store failures to domain errors. Duplicate key
// violations keep the violated index name in the details so use cases can
// map them to the right invariant (name uniqueness vs. root-role index).
func translateCommitError(err error) *UseCaseError {
	if storemongo.IsDuplicateKeyError(err) {
		return BusinessRuleError(
			ErrCodeDuplicateKey,
			"Duplicate key: "+err.Error(),
			map[string]any{"index": storemongo.DuplicateKeyIndex(err)},
		)
	}
	return BusinessRuleError(
		ErrCodeCommitFailed,
		"Transaction failed: "+err.Error(),
		nil,
	)
}

// persistAggregate upserts an aggregate to its collection.
func (uow *MongoUnitOfWork) persistAggregate(ctx mongo.SessionContext, aggregate any) error {
	collectionName := uow.getCollectionName(aggregate)
	id := uow.extractID(aggregate)

	if collectionName == "" {
		return fmt.Errorf("cannot determine collection name for aggregate type %T", aggregate)
	}
	if id == "" {
		return fmt.Errorf("aggregate has no ID field")
	}

	collection := uow.db.Collection(collectionName)

	_, err := collection.ReplaceOne(
		ctx,
		bson.M{"_id": id},
		aggregate,
		options.Replace().SetUpsert(true),
	)

	return err
}

// deleteAggregate removes an aggregate from its collection.
func (uow *MongoUnitOfWork) deleteAggregate(ctx mongo.SessionContext, aggregate any) error {
	collectionName := uow.getCollectionName(aggregate)
	id := uow.extractID(aggregate)

	if collectionName == "" {
		return fmt.Errorf("cannot determine collection name for aggregate type %T", aggregate)
	}
	if id == "" {
		return fmt.Errorf("aggregate has no ID field")
	}

	collection := uow.db.Collection(collectionName)
	_, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// createEvent inserts the domain event into the events collection.
func (uow *MongoUnitOfWork) createEvent(ctx mongo.SessionContext, event DomainEvent, companyID string) error {
	persistedEvent := ToPersistedEvent(event, companyID)

	collection := uow.db.Collection("events")
	_, err := collection.InsertOne(ctx, persistedEvent)
	return err
}

// createAuditLog creates an audit log entry for the operation.
func (uow *MongoUnitOfWork) createAuditLog(ctx mongo.SessionContext, event DomainEvent, command any) error {
	var operationJSON string
	if auditable, ok := command.(Auditable); ok {
		operationJSON = auditable.ToAuditJSON()
	} else {
		bytes, err := json.Marshal(command)
		if err != nil {
			operationJSON = "{}"
		} else {
			operationJSON = string(bytes)
		}
	}

	auditLog := bson.M{
		"_id":           uuid.NewString(),
		"entityType":    extractEntityType(event.Subject()),
		"entityId":      extractEntityID(event.Subject()),
		"operation":     extractOperationName(command),
		"operationJson": operationJSON,
		"principalId":   event.PrincipalID(),
		"performedAt":   event.Time(),
	}

	collection := uow.db.Collection("audit_logs")
	_, err := collection.InsertOne(ctx, auditLog)
	return err
}

// getCollectionName determines the store collection for an aggregate.
func (uow *MongoUnitOfWork) getCollectionName(aggregate any) string {
	if ar, ok := aggregate.(AggregateRoot); ok {
		return ar.CollectionName()
	}

	t := reflect.TypeOf(aggregate)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// Known aggregate types of the authorization core.
	collectionMap := map[string]string{
		"Group":   "auth_groups",
		"Company": "companies",
		"User":    "auth_users",
	}

	if collection, ok := collectionMap[t.Name()]; ok {
		return collection
	}

	return toSnakeCase(t.Name()) + "s"
}

// extractID gets the ID from an aggregate.
func (uow *MongoUnitOfWork) extractID(aggregate any) string {
	if ar, ok := aggregate.(AggregateRoot); ok {
		return ar.AggregateID()
	}

	v := reflect.ValueOf(aggregate)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	field := v.FieldByName("ID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}

// extractEntityType extracts the aggregate name from a subject string.
// Subject format: {domain}.{aggregate}.{id}
func extractEntityType(subject string) string {
	parts := strings.Split(subject, ".")
	if len(parts) >= 2 {
		return toPascalCase(parts[1])
	}
	return "Unknown"
}

// extractEntityID extracts the aggregate ID from a subject string.
func extractEntityID(subject string) string {
	parts := strings.Split(subject, ".")
	if len(parts) >= 3 {
		return parts[2]
	}
	return ""
}

// extractOperationName derives the audit operation name from the command
// type, including the "Command" suffix.
func extractOperationName(command any) string {
	t := reflect.TypeOf(command)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

func toPascalCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
