package mongo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names referenced by domain code when translating duplicate-key
// failures into domain errors.
const (
	// IndexGroupScopeName enforces (companyId, service, name) uniqueness
	// across all groups and roles.
	IndexGroupScopeName = "uniq_group_company_service_name"

	// IndexRootRole enforces at most one root role per (companyId, service).
	// The create path relies on this to resolve the check-then-insert race:
	// the loser of a concurrent first-create is retried as non-root.
	IndexRootRole = "uniq_root_role_company_service"
)

// IndexDefinition defines a MongoDB index
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptions
}

// IndexInitializer creates indexes on startup
type IndexInitializer struct {
	client *Client
}

// NewIndexInitializer creates a new index initializer
func NewIndexInitializer(client *Client) *IndexInitializer {
	return &IndexInitializer{client: client}
}

// Initialize creates all required indexes
func (i *IndexInitializer) Initialize(ctx context.Context) error {
	for _, idx := range i.getIndexDefinitions() {
		if err := i.createIndex(ctx, idx); err != nil {
			return err
		}
	}
	slog.Info("MongoDB indexes initialized")
	return nil
}

func (i *IndexInitializer) getIndexDefinitions() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: "auth_groups",
			Keys:       bson.D{{Key: "companyId", Value: 1}, {Key: "service", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().
				SetName(IndexGroupScopeName).
				SetUnique(true),
		},
		{
			Collection: "auth_groups",
			Keys:       bson.D{{Key: "companyId", Value: 1}, {Key: "service", Value: 1}},
			Options: options.Index().
				SetName(IndexRootRole).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isRoot": true}),
		},
		{
			Collection: "auth_groups",
			Keys:       bson.D{{Key: "users", Value: 1}},
			Options:    options.Index().SetName("idx_group_users"),
		},
		{
			Collection: "events",
			Keys:       bson.D{{Key: "correlationId", Value: 1}},
			Options:    options.Index().SetName("idx_event_correlation"),
		},
		{
			Collection: "events",
			Keys:       bson.D{{Key: "subject", Value: 1}, {Key: "time", Value: 1}},
			Options:    options.Index().SetName("idx_event_subject_time"),
		},
		{
			Collection: "audit_logs",
			Keys:       bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}},
			Options:    options.Index().SetName("idx_audit_entity"),
		},
	}
}

func (i *IndexInitializer) createIndex(ctx context.Context, idx IndexDefinition) error {
	createCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	collection := i.client.Collection(idx.Collection)
	_, err := collection.Indexes().CreateOne(createCtx, mongo.IndexModel{
		Keys:    idx.Keys,
		Options: idx.Options,
	})
	if err != nil {
		// An index that already exists with the same spec is fine.
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		slog.Error("Failed to create index",
			"collection", idx.Collection,
			"error", err)
		return err
	}
	return nil
}

// IsDuplicateKeyError reports whether err is a unique index violation.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// DuplicateKeyIndex extracts the violated index name from a duplicate-key
// error. Returns "" when the name cannot be determined.
func DuplicateKeyIndex(err error) string {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	// Server message format: "... duplicate key error collection: db.coll
	// index: <name> dup key: { ... }"
	msg := err.Error()
	marker := "index: "
	pos := strings.Index(msg, marker)
	if pos < 0 {
		return ""
	}
	rest := msg[pos+len(marker):]
	if end := strings.IndexAny(rest, " \t"); end > 0 {
		return rest[:end]
	}
	return rest
}
