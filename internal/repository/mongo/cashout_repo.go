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

const cashoutCollectionName = "cashouts"

// mongoCashoutRepository implements repository.CashoutRepository
type mongoCashoutRepository struct {
	collection *mongo.Collection
}

// NewMongoCashoutRepository creates a new Cashout repository backed by MongoDB.
func NewMongoCashoutRepository(db *mongo.Database) repository.CashoutRepository {
	return &mongoCashoutRepository{
		collection: db.Collection(cashoutCollectionName),
	}
}

// Create inserts a new cashout request into the database.
func (r *mongoCashoutRepository) Create(ctx context.Context, cashout *domain.Cashout) (primitive.ObjectID, error) {
	if cashout.CreatorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("cashout requires creatorId")
	}

	cashout.ID = primitive.NewObjectID()
	cashout.CreatedAt = time.Now().UTC()
	if cashout.Status == "" {
		cashout.Status = domain.CashoutPending
	}

	result, err := r.collection.InsertOne(ctx, cashout)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted cashout ID")
	}

	return insertedID, nil
}

// GetByCreatorID retrieves all cashout requests made by a creator, newest first.
func (r *mongoCashoutRepository) GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Cashout, error) {
	var cashouts []domain.Cashout
	filter := bson.M{"creatorId": creatorID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &cashouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return cashouts, nil
}

// EnsureCashoutIndexes creates necessary indexes for the cashouts collection.
func EnsureCashoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
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
