package mongo

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const submissionCollectionName = "submissions"

// mongoSubmissionRepository implements repository.SubmissionRepository
type mongoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubmissionRepository creates a new Submission repository backed by MongoDB.
func NewMongoSubmissionRepository(db *mongo.Database) repository.SubmissionRepository {
	return &mongoSubmissionRepository{
		collection: db.Collection(submissionCollectionName),
	}
}

// Create inserts a new submission into the database.
func (r *mongoSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) (primitive.ObjectID, error) {
	if submission.ContestID == primitive.NilObjectID ||
		submission.CreatorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("submission requires contestId and creatorId")
	}

	submission.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	submission.CreatedAt = now
	submission.UpdatedAt = now
	if submission.PostedAt.IsZero() {
		submission.PostedAt = now
	}
	if submission.Status == "" {
		submission.Status = domain.SubmissionPending
	}

	result, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted submission ID")
	}

	return insertedID, nil
}

// GetByID retrieves a submission by its ID.
func (r *mongoSubmissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Submission, error) {
	var submission domain.Submission
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetByCreatorID retrieves all submissions made by a creator, newest first.
func (r *mongoSubmissionRepository) GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Submission, error) {
	var submissions []domain.Submission
	filter := bson.M{"creatorId": creatorID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

// GetIDsByStatus returns submission IDs with the given status, optionally
// scoped to one contest. Used by the metrics refresh loop.
func (r *mongoSubmissionRepository) GetIDsByStatus(ctx context.Context, status domain.SubmissionStatus, contestID *primitive.ObjectID, limit int64) ([]primitive.ObjectID, error) {
	filter := bson.M{"status": status}
	if contestID != nil {
		filter["contestId"] = *contestID
	}

	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// UpdateStatus moves a submission through its lifecycle (pending -> approved | rejected).
func (r *mongoSubmissionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubmissionStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetApprovedTotalsByContest returns every approved submission of the contest
// joined with its metrics snapshots, summing each metrics field across all
// recorded dates. A submission with no snapshots yet sums to zero, not to a
// missing row.
func (r *mongoSubmissionRepository) GetApprovedTotalsByContest(ctx context.Context, contestID primitive.ObjectID) ([]domain.SubmissionTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"contestId": contestID,
			"status":    domain.SubmissionApproved,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         metricsCollectionName,
			"localField":   "_id",
			"foreignField": "submissionId",
			"as":           "metrics",
		}}},
		{{Key: "$project", Value: bson.M{
			"creatorId":   1,
			"createdAt":   1,
			"sumViews":    bson.M{"$sum": "$metrics.views"},
			"sumLikes":    bson.M{"$sum": "$metrics.likes"},
			"sumComments": bson.M{"$sum": "$metrics.comments"},
			"sumShares":   bson.M{"$sum": "$metrics.shares"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []domain.SubmissionTotals
	if err = cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// EnsureSubmissionIndexes creates necessary indexes for the submissions collection.
func EnsureSubmissionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The leaderboard recompute filters on (contestId, status)
			Keys:    bson.D{{Key: "contestId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "creatorId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
