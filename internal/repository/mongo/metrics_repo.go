package mongo

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const metricsCollectionName = "metrics_daily"

// mongoMetricsRepository implements repository.MetricsRepository
type mongoMetricsRepository struct {
	collection *mongo.Collection
}

// NewMongoMetricsRepository creates a new Metrics repository backed by MongoDB.
func NewMongoMetricsRepository(db *mongo.Database) repository.MetricsRepository {
	return &mongoMetricsRepository{
		collection: db.Collection(metricsCollectionName),
	}
}

// Upsert writes a daily snapshot keyed by (submissionId, date). Writing the
// same pair twice replaces the earlier counts; the unique compound index
// guarantees at most one document per pair.
func (r *mongoMetricsRepository) Upsert(ctx context.Context, snapshot *domain.MetricsSnapshot) error {
	if snapshot.SubmissionID == primitive.NilObjectID || snapshot.Date == "" {
		return errors.New("metrics snapshot requires submissionId and date")
	}

	filter := bson.M{
		"submissionId": snapshot.SubmissionID,
		"date":         snapshot.Date,
	}
	update := bson.M{"$set": bson.M{
		"submissionId": snapshot.SubmissionID,
		"date":         snapshot.Date,
		"views":        snapshot.Views,
		"likes":        snapshot.Likes,
		"comments":     snapshot.Comments,
		"shares":       snapshot.Shares,
	}}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetBySubmissionID retrieves all snapshots for a submission, oldest first.
func (r *mongoMetricsRepository) GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) ([]domain.MetricsSnapshot, error) {
	var snapshots []domain.MetricsSnapshot
	filter := bson.M{"submissionId": submissionID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// EnsureMetricsIndexes creates necessary indexes for the metrics_daily collection.
func EnsureMetricsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At most one snapshot per (submission, date)
			Keys:    bson.D{{Key: "submissionId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
