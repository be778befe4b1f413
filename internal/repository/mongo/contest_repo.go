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

const contestCollectionName = "contests"

// mongoContestRepository implements repository.ContestRepository
type mongoContestRepository struct {
	collection *mongo.Collection
}

// NewMongoContestRepository creates a new Contest repository backed by MongoDB.
func NewMongoContestRepository(db *mongo.Database) repository.ContestRepository {
	return &mongoContestRepository{
		collection: db.Collection(contestCollectionName),
	}
}

// Create inserts a new contest into the database.
func (r *mongoContestRepository) Create(ctx context.Context, contest *domain.Contest) (primitive.ObjectID, error) {
	if contest.BrandID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("contest requires brandId")
	}
	if contest.TotalPrizeCents < 0 {
		return primitive.NilObjectID, errors.New("contest prize budget cannot be negative")
	}

	contest.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	contest.CreatedAt = now
	contest.UpdatedAt = now
	if contest.Status == "" {
		contest.Status = domain.ContestDraft
	}

	result, err := r.collection.InsertOne(ctx, contest)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted contest ID")
	}

	return insertedID, nil
}

// GetByID retrieves a contest by its ID.
func (r *mongoContestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contest, error) {
	var contest domain.Contest
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&contest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// GetByBrandID retrieves all contests owned by a brand, newest first.
func (r *mongoContestRepository) GetByBrandID(ctx context.Context, brandID primitive.ObjectID) ([]domain.Contest, error) {
	var contests []domain.Contest
	filter := bson.M{"brandId": brandID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &contests); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return contests, nil
}

// GetByStatus retrieves all contests with the given status, newest first.
func (r *mongoContestRepository) GetByStatus(ctx context.Context, status domain.ContestStatus) ([]domain.Contest, error) {
	var contests []domain.Contest
	filter := bson.M{"status": status}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &contests); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return contests, nil
}

// UpdateStatus moves a contest through its lifecycle (draft/active/ended).
func (r *mongoContestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ContestStatus) error {
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

// SetBannerObjectKey records the S3 key of the contest banner image.
func (r *mongoContestRepository) SetBannerObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"bannerObjectKey": objectKey,
		"updatedAt":       time.Now().UTC(),
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

// EnsureContestIndexes creates necessary indexes for the contests collection.
func EnsureContestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Index for listing a brand's contests
			Keys:    bson.D{{Key: "brandId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Index for the public "active contests" listing
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
