package service

import (
	"cliprace/backend/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCPMEuros is the assumed cost-per-mille when estimating media value.
const DefaultCPMEuros = 11.0

// --- Pure calculators ---
// All of these are total functions: degenerate inputs map to 0 by convention,
// never to an error. They are informational only and not part of ranking.

// EngagementPercent returns (likes+comments+shares)/views * 100.
func EngagementPercent(likes, comments, shares, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(likes+comments+shares) / float64(views) * 100
}

// EstimatedMediaValueEuros returns (totalViews/1000) * cpmEuros.
func EstimatedMediaValueEuros(totalViews int64, cpmEuros float64) float64 {
	return float64(totalViews) / 1000 * cpmEuros
}

// ROI returns (estimatedMediaValue - budget) / budget.
func ROI(estimatedMediaValue, budgetEuros float64) float64 {
	if budgetEuros <= 0 {
		return 0
	}
	return (estimatedMediaValue - budgetEuros) / budgetEuros
}

// CPV returns budget / totalViews (cost per view).
func CPV(budgetEuros float64, totalViews int64) float64 {
	if totalViews <= 0 {
		return 0
	}
	return budgetEuros / float64(totalViews)
}

// --- Error Definitions ---
var (
	ErrContestNotFound     = errors.New("contest not found")
	ErrContestAccessDenied = errors.New("access denied to this contest")
)

// ContestReport aggregates a contest's cumulative metrics with the
// cost-per-view economics shown on the brand dashboard.
type ContestReport struct {
	ContestID           string  `json:"contestId"`
	EligibleSubmissions int     `json:"eligibleSubmissions"`
	TotalViews          int64   `json:"totalViews"`
	TotalLikes          int64   `json:"totalLikes"`
	TotalComments       int64   `json:"totalComments"`
	TotalShares         int64   `json:"totalShares"`
	EngagementPercent   float64 `json:"engagementPercent"`
	EstimatedMediaValue float64 `json:"estimatedMediaValueEuros"`
	ROI                 float64 `json:"roi"`
	CostPerView         float64 `json:"costPerView"`
	BudgetEuros         float64 `json:"budgetEuros"`
}

// --- Service Interface ---
type AnalyticsService interface {
	GetContestReport(ctx context.Context, brandID, contestID primitive.ObjectID) (*ContestReport, error)
}

// --- Service Implementation ---

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	contestRepo    repository.ContestRepository
	submissionRepo repository.SubmissionRepository
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(contestRepo repository.ContestRepository, submissionRepo repository.SubmissionRepository) AnalyticsService {
	return &analyticsService{
		contestRepo:    contestRepo,
		submissionRepo: submissionRepo,
	}
}

// GetContestReport builds the economics report for one of the brand's contests.
func (s *analyticsService) GetContestReport(ctx context.Context, brandID, contestID primitive.ObjectID) (*ContestReport, error) {
	if brandID == primitive.NilObjectID || contestID == primitive.NilObjectID {
		return nil, errors.New("brand ID and contest ID are required")
	}

	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	if contest.BrandID != brandID {
		return nil, ErrContestAccessDenied
	}

	totals, err := s.submissionRepo.GetApprovedTotalsByContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	report := &ContestReport{
		ContestID:           contest.ID.Hex(),
		EligibleSubmissions: len(totals),
		BudgetEuros:         float64(contest.TotalPrizeCents) / 100,
	}
	for _, row := range totals {
		report.TotalViews += row.SumViews
		report.TotalLikes += row.SumLikes
		report.TotalComments += row.SumComments
		report.TotalShares += row.SumShares
	}

	report.EngagementPercent = EngagementPercent(report.TotalLikes, report.TotalComments, report.TotalShares, report.TotalViews)
	report.EstimatedMediaValue = EstimatedMediaValueEuros(report.TotalViews, DefaultCPMEuros)
	report.ROI = ROI(report.EstimatedMediaValue, report.BudgetEuros)
	report.CostPerView = CPV(report.BudgetEuros, report.TotalViews)

	return report, nil
}
