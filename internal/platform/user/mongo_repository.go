package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoRepository provides MongoDB access to user data
type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a new user repository with instrumentation
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection("auth_users"),
	})
}

// FindByID finds a user by ID
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
