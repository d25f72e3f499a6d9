package meta

import (
	"context"
	"time"

	"go-lms-bridge/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MetaRepository interface {
	Get(ctx context.Context, entityID, key string) (interface{}, error)
	GetAll(ctx context.Context, entityID string) (map[string]interface{}, error)
	Set(ctx context.Context, entityID, key string, value interface{}) error
	Delete(ctx context.Context, entityID, key string) error
	DeleteAll(ctx context.Context, entityID string) error
	EnsureIndexes(ctx context.Context) error
}

type MetaRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMetaRepository(mongodb *database.MongodbDB) MetaRepository {
	return &MetaRepositoryImpl{
		Collection: mongodb.DB.Collection("entity_meta"),
	}
}

// Get returns (nil, nil) for an absent key; absence is "use default"
// territory for every caller, never an error.
func (r *MetaRepositoryImpl) Get(ctx context.Context, entityID, key string) (interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return nil, err
	}

	var m Meta
	err = r.Collection.FindOne(ctx, bson.M{"entity_id": oid, "key": key}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return m.Value, nil
}

func (r *MetaRepositoryImpl) GetAll(ctx context.Context, entityID string) (map[string]interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"entity_id": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := map[string]interface{}{}
	for cursor.Next(ctx) {
		var m Meta
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		out[m.Key] = m.Value
	}
	return out, cursor.Err()
}

func (r *MetaRepositoryImpl) Set(ctx context.Context, entityID, key string, value interface{}) error {
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return err
	}

	filter := bson.M{"entity_id": oid, "key": key}
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err = r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *MetaRepositoryImpl) Delete(ctx context.Context, entityID, key string) error {
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"entity_id": oid, "key": key})
	return err
}

func (r *MetaRepositoryImpl) DeleteAll(ctx context.Context, entityID string) error {
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteMany(ctx, bson.M{"entity_id": oid})
	return err
}

func (r *MetaRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "entity_id", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
