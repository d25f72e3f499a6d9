package sync

import (
	"context"

	"go-lms-bridge/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SyncLogRepository interface {
	Create(ctx context.Context, entry *SyncLogEntry) error
	List(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]SyncLogEntry, error)
	EnsureIndexes(ctx context.Context) error
}

type SyncLogRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSyncLogRepository(db *database.MongodbDB) SyncLogRepository {
	return &SyncLogRepositoryImpl{
		collection: db.DB.Collection("sync_logs"),
	}
}

func (r *SyncLogRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *SyncLogRepositoryImpl) Create(ctx context.Context, entry *SyncLogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *SyncLogRepositoryImpl) List(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]SyncLogEntry, error) {
	filter := bson.M{}
	for key, value := range filters {
		filter[key] = value
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []SyncLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
