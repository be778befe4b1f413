package mongo

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const leaderboardCollectionName = "leaderboards"

// mongoLeaderboardRepository implements repository.LeaderboardRepository
type mongoLeaderboardRepository struct {
	collection *mongo.Collection
}

// NewMongoLeaderboardRepository creates a new Leaderboard repository backed by MongoDB.
func NewMongoLeaderboardRepository(db *mongo.Database) repository.LeaderboardRepository {
	return &mongoLeaderboardRepository{
		collection: db.Collection(leaderboardCollectionName),
	}
}

// DeleteByContestID removes every persisted leaderboard row for the contest.
func (r *mongoLeaderboardRepository) DeleteByContestID(ctx context.Context, contestID primitive.ObjectID) error {
	filter := bson.M{"contestId": contestID}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// UpsertMany bulk-upserts leaderboard rows keyed by (contestId, rank).
// A no-op for an empty slice.
func (r *mongoLeaderboardRepository) UpsertMany(ctx context.Context, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(entries))
	for i, entry := range entries {
		filter := bson.M{
			"contestId": entry.ContestID,
			"rank":      entry.Rank,
		}
		update := bson.M{"$set": bson.M{
			"contestId":     entry.ContestID,
			"rank":          entry.Rank,
			"submissionId":  entry.SubmissionID,
			"creatorId":     entry.CreatorID,
			"viewsWeighted": entry.ViewsWeighted,
			"prizeCents":    entry.PrizeCents,
			"computedAt":    entry.ComputedAt,
		}}
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true)
	}

	// Ordered writes so a failure surfaces immediately rather than leaving
	// interleaved partial state behind silently.
	opts := options.BulkWrite().SetOrdered(true)
	_, err := r.collection.BulkWrite(ctx, models, opts)
	return err
}

// GetByContestID retrieves the contest's leaderboard ordered by rank.
func (r *mongoLeaderboardRepository) GetByContestID(ctx context.Context, contestID primitive.ObjectID) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	filter := bson.M{"contestId": contestID}
	findOptions := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// EnsureLeaderboardIndexes creates necessary indexes for the leaderboards collection.
func EnsureLeaderboardIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One row per (contest, rank); also serves the ordered read
			Keys:    bson.D{{Key: "contestId", Value: 1}, {Key: "rank", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Creator wallet view: "my ranked rows across contests"
			Keys:    bson.D{{Key: "creatorId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
