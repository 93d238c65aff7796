package company

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoRepository provides MongoDB access to company data
type mongoRepository struct {
	collection *mongo.Collection
}

// NewRepository creates a new company repository with instrumentation
func NewRepository(db *mongo.Database) Repository {
	return newInstrumentedRepository(&mongoRepository{
		collection: db.Collection("companies"),
	})
}

// FindByID finds a company by ID
func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
