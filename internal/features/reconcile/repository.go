package reconcile

import (
	"context"

	"go-lms-bridge/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReconcileRepository interface {
	Create(ctx context.Context, run *ReconcileRun) (*ReconcileRun, error)
	Update(ctx context.Context, run *ReconcileRun) error
	List(ctx context.Context, page, limit int64) ([]ReconcileRun, error)
}

type ReconcileRepositoryImpl struct {
	collection *mongo.Collection
}

func NewReconcileRepository(db *database.MongodbDB) ReconcileRepository {
	return &ReconcileRepositoryImpl{
		collection: db.DB.Collection("reconcile_runs"),
	}
}

func (r *ReconcileRepositoryImpl) Create(ctx context.Context, run *ReconcileRun) (*ReconcileRun, error) {
	res, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		run.ID = oid
	}
	return run, nil
}

func (r *ReconcileRepositoryImpl) Update(ctx context.Context, run *ReconcileRun) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, run)
	return err
}

func (r *ReconcileRepositoryImpl) List(ctx context.Context, page, limit int64) ([]ReconcileRun, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.M{"started_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []ReconcileRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
