package repository

import (
	"cliprace/backend/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ContestRepository defines the interface for interacting with contest data.
type ContestRepository interface {
	Create(ctx context.Context, contest *domain.Contest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contest, error)
	GetByBrandID(ctx context.Context, brandID primitive.ObjectID) ([]domain.Contest, error)
	GetByStatus(ctx context.Context, status domain.ContestStatus) ([]domain.Contest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ContestStatus) error
	SetBannerObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// SubmissionRepository defines the interface for interacting with submission data.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Submission, error)
	GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Submission, error)
	GetIDsByStatus(ctx context.Context, status domain.SubmissionStatus, contestID *primitive.ObjectID, limit int64) ([]primitive.ObjectID, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SubmissionStatus) error
	// GetApprovedTotalsByContest returns every approved submission of the
	// contest together with the per-submission sum of each metrics field
	// across all recorded snapshot dates.
	GetApprovedTotalsByContest(ctx context.Context, contestID primitive.ObjectID) ([]domain.SubmissionTotals, error)
}

// MetricsRepository defines the interface for interacting with daily metrics snapshots.
type MetricsRepository interface {
	// Upsert writes a snapshot keyed by (submissionId, date); a second write
	// for the same pair replaces the first.
	Upsert(ctx context.Context, snapshot *domain.MetricsSnapshot) error
	GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) ([]domain.MetricsSnapshot, error)
}

// LeaderboardRepository defines the interface for interacting with persisted leaderboard rows.
type LeaderboardRepository interface {
	DeleteByContestID(ctx context.Context, contestID primitive.ObjectID) error
	// UpsertMany bulk-upserts rows keyed by (contestId, rank).
	UpsertMany(ctx context.Context, entries []domain.LeaderboardEntry) error
	GetByContestID(ctx context.Context, contestID primitive.ObjectID) ([]domain.LeaderboardEntry, error)
}

// CashoutRepository defines the interface for interacting with cashout requests.
type CashoutRepository interface {
	Create(ctx context.Context, cashout *domain.Cashout) (primitive.ObjectID, error)
	GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Cashout, error)
}
