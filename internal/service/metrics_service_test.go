package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMockRefreshSubmission(t *testing.T) {
	require := require.New(t)

	metricsRepo := &fakeMetricsRepo{}
	svc := NewMetricsService(newFakeSubmissionRepo(), metricsRepo)
	submissionID := primitive.NewObjectID()

	err := svc.MockRefreshSubmission(context.Background(), submissionID)
	require.NoError(err)
	require.Len(metricsRepo.snapshots, 1)

	snapshot := metricsRepo.snapshots[0]
	require.Equal(submissionID, snapshot.SubmissionID)
	require.Equal(time.Now().UTC().Format("2006-01-02"), snapshot.Date)

	// Generated counts stay within the fabricated engagement envelope
	require.GreaterOrEqual(snapshot.Views, int64(500))
	require.LessOrEqual(snapshot.Views, int64(3599)) // 2999 * 1.20
	require.LessOrEqual(snapshot.Likes, snapshot.Views)
	require.LessOrEqual(snapshot.Comments, snapshot.Likes)
	require.GreaterOrEqual(snapshot.Likes, int64(0))
	require.GreaterOrEqual(snapshot.Comments, int64(0))
	require.GreaterOrEqual(snapshot.Shares, int64(0))
}

func TestMockRefreshSubmission_UpsertsSameDay(t *testing.T) {
	require := require.New(t)

	metricsRepo := &fakeMetricsRepo{}
	svc := NewMetricsService(newFakeSubmissionRepo(), metricsRepo)
	submissionID := primitive.NewObjectID()

	require.NoError(svc.MockRefreshSubmission(context.Background(), submissionID))
	require.NoError(svc.MockRefreshSubmission(context.Background(), submissionID))

	// Two refreshes on the same day replace, never accumulate
	require.Len(metricsRepo.snapshots, 1)
}

func TestMockRefreshSubmission_RequiresID(t *testing.T) {
	require := require.New(t)

	svc := NewMetricsService(newFakeSubmissionRepo(), &fakeMetricsRepo{})
	err := svc.MockRefreshSubmission(context.Background(), primitive.NilObjectID)
	require.Error(err)
}

func TestRefreshApproved(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	metricsRepo := &fakeMetricsRepo{}
	svc := NewMetricsService(submissionRepo, metricsRepo)

	submissionRepo.approvedIDs = []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}

	updated, err := svc.RefreshApproved(context.Background(), nil)
	require.NoError(err)
	require.Equal(3, updated)
	require.Len(metricsRepo.snapshots, 3)
}

func TestRefreshApproved_AbortsOnError(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	metricsRepo := &fakeMetricsRepo{upsertErr: errors.New("write failed")}
	svc := NewMetricsService(submissionRepo, metricsRepo)

	submissionRepo.approvedIDs = []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	updated, err := svc.RefreshApproved(context.Background(), nil)
	require.ErrorContains(err, "write failed")
	require.Zero(updated, "first failing submission reports zero progress")
}

func TestRefreshApproved_QueryErrorPropagates(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	submissionRepo.idsErr = errors.New("query failed")
	svc := NewMetricsService(submissionRepo, &fakeMetricsRepo{})

	_, err := svc.RefreshApproved(context.Background(), nil)
	require.ErrorContains(err, "query failed")
}
