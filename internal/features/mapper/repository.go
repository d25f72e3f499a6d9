package mapper

import (
	"context"

	"go-lms-bridge/internal/database"

	common_models "go-lms-bridge/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MapperRepository interface {
	Create(ctx context.Context, mapping *CustomMapping) (*CustomMapping, error)
	List(ctx context.Context, entityType common_models.EntityType) ([]CustomMapping, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type MapperRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMapperRepository(db *database.MongodbDB) MapperRepository {
	return &MapperRepositoryImpl{
		collection: db.DB.Collection("custom_mappings"),
	}
}

func (r *MapperRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "entity_type", Value: 1}, {Key: "path", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MapperRepositoryImpl) Create(ctx context.Context, mapping *CustomMapping) (*CustomMapping, error) {
	res, err := r.collection.InsertOne(ctx, mapping)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		mapping.ID = oid
	}
	return mapping, nil
}

func (r *MapperRepositoryImpl) List(ctx context.Context, entityType common_models.EntityType) ([]CustomMapping, error) {
	filter := bson.M{}
	if entityType != "" {
		filter["entity_type"] = entityType
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mappings []CustomMapping
	if err := cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *MapperRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
