package capability

import (
	"context"
	"time"

	"go-lms-bridge/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CapabilityRepository interface {
	List(ctx context.Context) ([]Capability, error)
	Upsert(ctx context.Context, name string, enabled bool) error
	EnsureIndexes(ctx context.Context) error
}

type CapabilityRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCapabilityRepository(mongodb *database.MongodbDB) CapabilityRepository {
	return &CapabilityRepositoryImpl{
		Collection: mongodb.DB.Collection("capabilities"),
	}
}

func (r *CapabilityRepositoryImpl) List(ctx context.Context) ([]Capability, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var capabilities []Capability
	if err = cursor.All(ctx, &capabilities); err != nil {
		return nil, err
	}
	return capabilities, nil
}

func (r *CapabilityRepositoryImpl) Upsert(ctx context.Context, name string, enabled bool) error {
	filter := bson.M{"name": name}
	update := bson.M{"$set": bson.M{"enabled": enabled, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *CapabilityRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
