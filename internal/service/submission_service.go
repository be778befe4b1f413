package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUnsupportedVideoURL    = errors.New("video URL does not belong to a supported network")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrSubmissionAccessDenied = errors.New("access denied to moderate this submission")
	ErrSubmissionNotPending   = errors.New("submission has already been moderated")
)

// --- Service Interface ---
type SubmissionService interface {
	CreateSubmission(ctx context.Context, creatorID, contestID primitive.ObjectID, videoURL string, postedAt *time.Time) (*domain.Submission, error)
	GetSubmissionsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Submission, error)
	ApproveSubmission(ctx context.Context, brandID, submissionID primitive.ObjectID) (*domain.Submission, error)
	RejectSubmission(ctx context.Context, brandID, submissionID primitive.ObjectID) (*domain.Submission, error)
}

// --- Service Implementation ---

// submissionService implements the SubmissionService interface.
type submissionService struct {
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
}

// NewSubmissionService creates a new instance of submissionService.
func NewSubmissionService(submissionRepo repository.SubmissionRepository, contestRepo repository.ContestRepository) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
	}
}

// CreateSubmission enters a creator's video link into a contest. The network
// is classified from the URL hostname; unclassifiable URLs are rejected.
// New submissions start as pending and are not eligible for ranking until a
// brand approves them.
func (s *submissionService) CreateSubmission(ctx context.Context, creatorID, contestID primitive.ObjectID, videoURL string, postedAt *time.Time) (*domain.Submission, error) {
	if creatorID == primitive.NilObjectID || contestID == primitive.NilObjectID {
		return nil, errors.New("creator ID and contest ID are required")
	}

	network := domain.DetectNetworkFromURL(videoURL)
	if network == "" {
		return nil, ErrUnsupportedVideoURL
	}

	// Verify the contest exists before accepting the entry
	if _, err := s.contestRepo.GetByID(ctx, contestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}

	submission := &domain.Submission{
		ContestID: contestID,
		CreatorID: creatorID,
		Network:   network,
		VideoURL:  videoURL,
		Status:    domain.SubmissionPending,
	}
	if postedAt != nil {
		submission.PostedAt = *postedAt
	}

	submissionID, err := s.submissionRepo.Create(ctx, submission)
	if err != nil {
		return nil, err
	}
	submission.ID = submissionID
	return submission, nil
}

// GetSubmissionsByCreator retrieves all submissions made by the creator.
func (s *submissionService) GetSubmissionsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Submission, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	return s.submissionRepo.GetByCreatorID(ctx, creatorID)
}

// ApproveSubmission marks a pending submission as approved, making it
// eligible for ranking. Only the brand owning the contest may moderate.
func (s *submissionService) ApproveSubmission(ctx context.Context, brandID, submissionID primitive.ObjectID) (*domain.Submission, error) {
	return s.moderate(ctx, brandID, submissionID, domain.SubmissionApproved)
}

// RejectSubmission marks a pending submission as rejected.
func (s *submissionService) RejectSubmission(ctx context.Context, brandID, submissionID primitive.ObjectID) (*domain.Submission, error) {
	return s.moderate(ctx, brandID, submissionID, domain.SubmissionRejected)
}

// moderate applies an approve/reject decision after checking the brand owns
// the contest the submission belongs to.
func (s *submissionService) moderate(ctx context.Context, brandID, submissionID primitive.ObjectID, status domain.SubmissionStatus) (*domain.Submission, error) {
	if brandID == primitive.NilObjectID || submissionID == primitive.NilObjectID {
		return nil, errors.New("brand ID and submission ID are required")
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.Status != domain.SubmissionPending {
		return nil, ErrSubmissionNotPending
	}

	contest, err := s.contestRepo.GetByID(ctx, submission.ContestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	if contest.BrandID != brandID {
		return nil, ErrSubmissionAccessDenied
	}

	if err := s.submissionRepo.UpdateStatus(ctx, submissionID, status); err != nil {
		return nil, err
	}
	submission.Status = status
	return submission, nil
}
