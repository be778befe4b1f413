package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"cliprace/backend/internal/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid" // For generating unique identifiers for S3 keys
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrContestValidation    = errors.New("contest validation failed")
	ErrNegativePrizeBudget  = errors.New("total prize budget cannot be negative")
	ErrInvalidContestStatus = errors.New("invalid contest status")
)

// --- Service Interface ---
type ContestService interface {
	CreateContest(ctx context.Context, brandID primitive.ObjectID, title, description string, totalPrizeCents int64, endsAt *time.Time) (*domain.Contest, error)
	GetContestByID(ctx context.Context, contestID primitive.ObjectID) (*domain.Contest, error)
	GetContestsByBrand(ctx context.Context, brandID primitive.ObjectID) ([]domain.Contest, error)
	GetActiveContests(ctx context.Context) ([]domain.Contest, error)
	UpdateContestStatus(ctx context.Context, brandID, contestID primitive.ObjectID, status domain.ContestStatus) (*domain.Contest, error)
	GenerateBannerUploadURL(ctx context.Context, brandID, contestID primitive.ObjectID, contentType string) (string, error)
}

// --- Service Implementation ---

// contestService implements the ContestService interface.
type contestService struct {
	contestRepo repository.ContestRepository
	fileStorage storage.FileStorage
}

// NewContestService creates a new instance of contestService.
func NewContestService(contestRepo repository.ContestRepository, fileStorage storage.FileStorage) ContestService {
	return &contestService{
		contestRepo: contestRepo,
		fileStorage: fileStorage,
	}
}

// CreateContest handles the creation of a new contest by a brand.
// New contests start in draft status.
func (s *contestService) CreateContest(ctx context.Context, brandID primitive.ObjectID, title, description string, totalPrizeCents int64, endsAt *time.Time) (*domain.Contest, error) {
	if title == "" {
		return nil, ErrContestValidation
	}
	if brandID == primitive.NilObjectID {
		return nil, errors.New("brand ID is required to create a contest")
	}
	if totalPrizeCents < 0 {
		return nil, ErrNegativePrizeBudget
	}

	contest := &domain.Contest{
		BrandID:         brandID,
		Title:           title,
		Description:     description,
		Status:          domain.ContestDraft,
		TotalPrizeCents: totalPrizeCents,
		EndsAt:          endsAt,
	}

	contestID, err := s.contestRepo.Create(ctx, contest)
	if err != nil {
		return nil, err
	}
	// Fetch again so CreatedAt/UpdatedAt come back populated
	return s.contestRepo.GetByID(ctx, contestID)
}

// GetContestByID retrieves a single contest.
func (s *contestService) GetContestByID(ctx context.Context, contestID primitive.ObjectID) (*domain.Contest, error) {
	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	return contest, nil
}

// GetContestsByBrand retrieves all contests owned by a brand.
func (s *contestService) GetContestsByBrand(ctx context.Context, brandID primitive.ObjectID) ([]domain.Contest, error) {
	if brandID == primitive.NilObjectID {
		return nil, errors.New("brand ID cannot be nil")
	}
	return s.contestRepo.GetByBrandID(ctx, brandID)
}

// GetActiveContests retrieves the contests creators can currently enter.
func (s *contestService) GetActiveContests(ctx context.Context) ([]domain.Contest, error) {
	return s.contestRepo.GetByStatus(ctx, domain.ContestActive)
}

// UpdateContestStatus moves a contest through its lifecycle, enforcing ownership.
func (s *contestService) UpdateContestStatus(ctx context.Context, brandID, contestID primitive.ObjectID, status domain.ContestStatus) (*domain.Contest, error) {
	if brandID == primitive.NilObjectID || contestID == primitive.NilObjectID {
		return nil, errors.New("brand ID and contest ID are required")
	}
	switch status {
	case domain.ContestDraft, domain.ContestActive, domain.ContestEnded:
	default:
		return nil, ErrInvalidContestStatus
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

	if err := s.contestRepo.UpdateStatus(ctx, contestID, status); err != nil {
		return nil, err
	}
	contest.Status = status
	return contest, nil
}

// GenerateBannerUploadURL creates a presigned PUT URL for the contest banner
// and records the object key on the contest.
func (s *contestService) GenerateBannerUploadURL(ctx context.Context, brandID, contestID primitive.ObjectID, contentType string) (string, error) {
	if brandID == primitive.NilObjectID || contestID == primitive.NilObjectID {
		return "", errors.New("brand ID and contest ID are required")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrContestNotFound
		}
		return "", err
	}
	if contest.BrandID != brandID {
		return "", ErrContestAccessDenied
	}

	objectKey := fmt.Sprintf("contests/%s/banner/%s", contestID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	if err := s.contestRepo.SetBannerObjectKey(ctx, contestID, objectKey); err != nil {
		return "", err
	}
	return uploadURL, nil
}
