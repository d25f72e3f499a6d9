package entity

import (
	"context"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EntityRepository interface {
	Create(ctx context.Context, e *Entity) error
	Get(ctx context.Context, id string) (*Entity, error)
	FindType(ctx context.Context, id string) (common_models.EntityType, error)
	List(ctx context.Context, entityType common_models.EntityType, limit, offset int64) ([]Entity, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type EntityRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEntityRepository(mongodb *database.MongodbDB) EntityRepository {
	return &EntityRepositoryImpl{
		Collection: mongodb.DB.Collection("entities"),
	}
}

func (r *EntityRepositoryImpl) Create(ctx context.Context, e *Entity) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()

	_, err := r.Collection.InsertOne(ctx, e)
	return err
}

func (r *EntityRepositoryImpl) Get(ctx context.Context, id string) (*Entity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var e Entity
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&e)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *EntityRepositoryImpl) FindType(ctx context.Context, id string) (common_models.EntityType, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return e.Type, nil
}

func (r *EntityRepositoryImpl) List(ctx context.Context, entityType common_models.EntityType, limit, offset int64) ([]Entity, error) {
	filter := bson.M{}
	if entityType != "" {
		filter["type"] = entityType
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit).SetSkip(offset)
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []Entity
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, err
	}

	return entities, nil
}

func (r *EntityRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *EntityRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
