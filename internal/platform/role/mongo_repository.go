package role

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.accessdeck.tech/internal/common/repository"
)

// mongoRepository provides MongoDB access to group and role data
type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a new group/role repository with instrumentation
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection("auth_groups"),
	})
}

// scopeFilter builds the partial (company, service) filter.
func scopeFilter(scope Scope) bson.M {
	filter := bson.M{}
	if scope.CompanyID != "" {
		filter["companyId"] = scope.CompanyID
	}
	if scope.Service != "" {
		filter["service"] = scope.Service
	}
	return filter
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]*Group, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// FindByScope finds all roles matching the scope filter
func (r *mongoRepository) FindByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	filter := scopeFilter(scope)
	filter["kind"] = string(KindRole)
	return r.find(ctx, filter)
}

// FindGroupsByScope finds all plain groups matching the scope filter
func (r *mongoRepository) FindGroupsByScope(ctx context.Context, scope Scope) ([]*Group, error) {
	filter := scopeFilter(scope)
	filter["kind"] = bson.M{"$exists": false}
	return r.find(ctx, filter)
}

// FindByUser finds roles whose membership contains userID
func (r *mongoRepository) FindByUser(ctx context.Context, userID string, scope Scope) ([]*Group, error) {
	filter := scopeFilter(scope)
	filter["kind"] = string(KindRole)
	filter["users"] = userID
	return r.find(ctx, filter)
}

// FindByID finds a group by ID
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	var g Group
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// CountRolesByScope counts roles for the exact scope
func (r *mongoRepository) CountRolesByScope(ctx context.Context, scope Scope) (int64, error) {
	filter := scopeFilter(scope)
	filter["kind"] = string(KindRole)
	return r.collection.CountDocuments(ctx, filter)
}

// Insert inserts a new group
func (r *mongoRepository) Insert(ctx context.Context, g *Group) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, g)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
	}
	return err
}

// Update replaces a group document by ID
func (r *mongoRepository) Update(ctx context.Context, g *Group) error {
	g.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete deletes a group by ID
func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// PullUserFromRoles removes userID from every in-scope role membership
func (r *mongoRepository) PullUserFromRoles(ctx context.Context, userID string, scope Scope) error {
	filter := scopeFilter(scope)
	filter["kind"] = string(KindRole)
	_, err := r.collection.UpdateMany(ctx, filter,
		bson.M{
			"$pull": bson.M{"users": userID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	return err
}

// AddUserToRoles adds userID to the roles matching both the id set and
// the scope filter. Ids that no longer match the scope are skipped, not
// reported.
func (r *mongoRepository) AddUserToRoles(ctx context.Context, userID string, roleIDs []string, scope Scope) error {
	if len(roleIDs) == 0 {
		return nil
	}
	filter := scopeFilter(scope)
	filter["kind"] = string(KindRole)
	filter["_id"] = bson.M{"$in": roleIDs}
	_, err := r.collection.UpdateMany(ctx, filter,
		bson.M{
			"$addToSet": bson.M{"users": userID},
			"$set":      bson.M{"updatedAt": time.Now()},
		})
	return err
}
