package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// refreshBatchLimit caps how many submissions a single refresh run touches.
const refreshBatchLimit = 2000

// --- Service Interface ---

// MetricsService maintains the daily metrics snapshots. The current
// implementation is a demo stand-in for a real social-media ingestion
// pipeline: it fabricates plausible counts instead of polling the platforms.
type MetricsService interface {
	// MockRefreshSubmission upserts today's snapshot for one submission with
	// generated counts.
	MockRefreshSubmission(ctx context.Context, submissionID primitive.ObjectID) error
	// RefreshApproved runs MockRefreshSubmission for every approved
	// submission, optionally scoped to one contest. Returns how many
	// submissions were refreshed.
	RefreshApproved(ctx context.Context, contestID *primitive.ObjectID) (int, error)
}

// --- Service Implementation ---

// metricsService implements the MetricsService interface.
type metricsService struct {
	submissionRepo repository.SubmissionRepository
	metricsRepo    repository.MetricsRepository
}

// NewMetricsService creates a new instance of metricsService.
func NewMetricsService(submissionRepo repository.SubmissionRepository, metricsRepo repository.MetricsRepository) MetricsService {
	return &metricsService{
		submissionRepo: submissionRepo,
		metricsRepo:    metricsRepo,
	}
}

// MockRefreshSubmission fabricates today's cumulative-looking counts for the
// submission: a base view count plus 5-20% growth, with likes/comments/shares
// derived as small fractions of views.
func (s *metricsService) MockRefreshSubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	if submissionID == primitive.NilObjectID {
		return errors.New("submission ID is required")
	}

	base := int64(gofakeit.Number(500, 2999))
	growth := int64(float64(base) * gofakeit.Float64Range(0.05, 0.20))
	views := base + growth
	likes := int64(float64(views) * gofakeit.Float64Range(0.03, 0.07))
	comments := int64(float64(views) * gofakeit.Float64Range(0.003, 0.007))
	shares := int64(float64(views) * gofakeit.Float64Range(0.002, 0.005))

	snapshot := &domain.MetricsSnapshot{
		SubmissionID: submissionID,
		Date:         time.Now().UTC().Format("2006-01-02"),
		Views:        views,
		Likes:        likes,
		Comments:     comments,
		Shares:       shares,
	}

	return s.metricsRepo.Upsert(ctx, snapshot)
}

// RefreshApproved refreshes every approved submission, one upsert per
// submission. A failure aborts the loop and reports how far it got.
func (s *metricsService) RefreshApproved(ctx context.Context, contestID *primitive.ObjectID) (int, error) {
	ids, err := s.submissionRepo.GetIDsByStatus(ctx, domain.SubmissionApproved, contestID, refreshBatchLimit)
	if err != nil {
		return 0, err
	}

	for i, id := range ids {
		if err := s.MockRefreshSubmission(ctx, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}
