package service

import (
	"cliprace/backend/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEngagementPercent(t *testing.T) {
	require := require.New(t)

	require.InDelta(17.0, EngagementPercent(10, 5, 2, 100), 1e-9)
	require.InDelta(5.0, EngagementPercent(40, 8, 2, 1000), 1e-9)

	// Zero or negative views never divide
	require.Zero(EngagementPercent(10, 5, 2, 0))
	require.Zero(EngagementPercent(10, 5, 2, -1))
}

func TestEstimatedMediaValueEuros(t *testing.T) {
	require := require.New(t)

	require.InDelta(11.0, EstimatedMediaValueEuros(1000, DefaultCPMEuros), 1e-9)
	require.InDelta(550.0, EstimatedMediaValueEuros(50000, DefaultCPMEuros), 1e-9)
	require.Zero(EstimatedMediaValueEuros(0, DefaultCPMEuros))
}

func TestROI(t *testing.T) {
	require := require.New(t)

	require.InDelta(1.0, ROI(2000, 1000), 1e-9)   // doubled the spend
	require.InDelta(-0.5, ROI(500, 1000), 1e-9)   // half the spend back
	require.Zero(ROI(500, 0))
	require.Zero(ROI(500, -10))
}

func TestCPV(t *testing.T) {
	require := require.New(t)

	require.InDelta(0.01, CPV(1000, 100000), 1e-9)
	require.Zero(CPV(1000, 0))
	require.Zero(CPV(1000, -5))
}

func TestGetContestReport(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	contestRepo := newFakeContestRepo()
	svc := NewAnalyticsService(contestRepo, submissionRepo)

	brandID := primitive.NewObjectID()
	contestID := contestRepo.add(&domain.Contest{
		BrandID:         brandID,
		Status:          domain.ContestActive,
		TotalPrizeCents: 100000, // 1000.00 EUR
	})

	submissionRepo.totals = []domain.SubmissionTotals{
		{SubmissionID: primitive.NewObjectID(), SumViews: 60000, SumLikes: 3000, SumComments: 300, SumShares: 200},
		{SubmissionID: primitive.NewObjectID(), SumViews: 40000, SumLikes: 1000, SumComments: 100, SumShares: 100},
	}

	report, err := svc.GetContestReport(context.Background(), brandID, contestID)
	require.NoError(err)

	require.Equal(2, report.EligibleSubmissions)
	require.Equal(int64(100000), report.TotalViews)
	require.Equal(int64(4000), report.TotalLikes)
	require.InDelta(1000.0, report.BudgetEuros, 1e-9)
	require.InDelta(4.7, report.EngagementPercent, 1e-9)         // (4000+400+300)/100000
	require.InDelta(1100.0, report.EstimatedMediaValue, 1e-9)    // 100k views at 11 CPM
	require.InDelta(0.1, report.ROI, 1e-9)                       // (1100-1000)/1000
	require.InDelta(0.01, report.CostPerView, 1e-9)              // 1000 EUR / 100k views
}

func TestGetContestReport_AccessControl(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	contestRepo := newFakeContestRepo()
	svc := NewAnalyticsService(contestRepo, submissionRepo)

	ownerID := primitive.NewObjectID()
	contestID := contestRepo.add(&domain.Contest{BrandID: ownerID, TotalPrizeCents: 1000})

	_, err := svc.GetContestReport(context.Background(), primitive.NewObjectID(), contestID)
	require.ErrorIs(err, ErrContestAccessDenied)

	_, err = svc.GetContestReport(context.Background(), ownerID, primitive.NewObjectID())
	require.ErrorIs(err, ErrContestNotFound)
}

func TestGetContestReport_NoSubmissions(t *testing.T) {
	require := require.New(t)

	submissionRepo := newFakeSubmissionRepo()
	contestRepo := newFakeContestRepo()
	svc := NewAnalyticsService(contestRepo, submissionRepo)

	brandID := primitive.NewObjectID()
	contestID := contestRepo.add(&domain.Contest{BrandID: brandID, TotalPrizeCents: 50000})

	report, err := svc.GetContestReport(context.Background(), brandID, contestID)
	require.NoError(err)
	require.Zero(report.EligibleSubmissions)
	require.Zero(report.TotalViews)
	require.Zero(report.EngagementPercent)
	require.Zero(report.CostPerView)
	require.InDelta(-1.0, report.ROI, 1e-9) // zero media value against a real budget
}
