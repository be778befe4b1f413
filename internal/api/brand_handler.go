package api

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandHandler holds the services a brand account interacts with.
type BrandHandler struct {
	contestService     service.ContestService
	submissionService  service.SubmissionService
	leaderboardService service.LeaderboardService
	analyticsService   service.AnalyticsService
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(
	contestService service.ContestService,
	submissionService service.SubmissionService,
	leaderboardService service.LeaderboardService,
	analyticsService service.AnalyticsService,
) *BrandHandler {
	return &BrandHandler{
		contestService:     contestService,
		submissionService:  submissionService,
		leaderboardService: leaderboardService,
		analyticsService:   analyticsService,
	}
}

// --- DTOs ---

type CreateContestRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	TotalPrizeCents int64      `json:"totalPrizeCents" binding:"gte=0"`
	EndsAt          *time.Time `json:"endsAt"`
}

type UpdateContestStatusRequest struct {
	Status domain.ContestStatus `json:"status" binding:"required,oneof=draft active ended"`
}

type BannerUploadRequest struct {
	ContentType string `json:"contentType" binding:"omitempty"`
}

type BannerUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
}

type ContestResponse struct {
	ID              string               `json:"id"`
	BrandID         string               `json:"brandId"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Status          domain.ContestStatus `json:"status"`
	TotalPrizeCents int64                `json:"totalPrizeCents"`
	EndsAt          *time.Time           `json:"endsAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type LeaderboardEntryResponse struct {
	Rank          int       `json:"rank"`
	SubmissionID  string    `json:"submissionId"`
	CreatorID     string    `json:"creatorId"`
	ViewsWeighted int64     `json:"viewsWeighted"`
	PrizeCents    int64     `json:"prizeCents"`
	ComputedAt    time.Time `json:"computedAt"`
}

// MapContestToResponse converts a domain.Contest to its DTO.
func MapContestToResponse(contest *domain.Contest) ContestResponse {
	if contest == nil {
		return ContestResponse{}
	}
	return ContestResponse{
		ID:              contest.ID.Hex(),
		BrandID:         contest.BrandID.Hex(),
		Title:           contest.Title,
		Description:     contest.Description,
		Status:          contest.Status,
		TotalPrizeCents: contest.TotalPrizeCents,
		EndsAt:          contest.EndsAt,
		CreatedAt:       contest.CreatedAt,
		UpdatedAt:       contest.UpdatedAt,
	}
}

// MapContestsToResponse converts a slice of contests to DTOs.
func MapContestsToResponse(contests []domain.Contest) []ContestResponse {
	responses := make([]ContestResponse, len(contests))
	for i, contest := range contests {
		responses[i] = MapContestToResponse(&contest)
	}
	return responses
}

// MapLeaderboardToResponse converts leaderboard entries to DTOs.
func MapLeaderboardToResponse(entries []domain.LeaderboardEntry) []LeaderboardEntryResponse {
	responses := make([]LeaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = LeaderboardEntryResponse{
			Rank:          entry.Rank,
			SubmissionID:  entry.SubmissionID.Hex(),
			CreatorID:     entry.CreatorID.Hex(),
			ViewsWeighted: entry.ViewsWeighted,
			PrizeCents:    entry.PrizeCents,
			ComputedAt:    entry.ComputedAt,
		}
	}
	return responses
}

// --- Handler Methods ---

// CreateContest creates a new draft contest for the authenticated brand.
func (h *BrandHandler) CreateContest(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}

	contest, err := h.contestService.CreateContest(c.Request.Context(), brandID, req.Title, req.Description, req.TotalPrizeCents, req.EndsAt)
	if err != nil {
		if errors.Is(err, service.ErrContestValidation) || errors.Is(err, service.ErrNegativePrizeBudget) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create contest.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapContestToResponse(contest))
}

// GetMyContests lists the authenticated brand's contests.
func (h *BrandHandler) GetMyContests(c *gin.Context) {
	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}

	contests, err := h.contestService.GetContestsByBrand(c.Request.Context(), brandID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve contests.")
		return
	}

	c.JSON(http.StatusOK, MapContestsToResponse(contests))
}

// GetContest returns one contest by ID.
func (h *BrandHandler) GetContest(c *gin.Context) {
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	contest, err := h.contestService.GetContestByID(c.Request.Context(), contestID)
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve contest.")
		}
		return
	}

	c.JSON(http.StatusOK, MapContestToResponse(contest))
}

// UpdateContestStatus moves a contest through draft/active/ended.
func (h *BrandHandler) UpdateContestStatus(c *gin.Context) {
	var req UpdateContestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	contest, err := h.contestService.UpdateContestStatus(c.Request.Context(), brandID, contestID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrContestAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidContestStatus):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update contest status.")
		}
		return
	}

	c.JSON(http.StatusOK, MapContestToResponse(contest))
}

// GetLeaderboard returns the persisted leaderboard for a contest, by rank.
func (h *BrandHandler) GetLeaderboard(c *gin.Context) {
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), contestID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve leaderboard.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": MapLeaderboardToResponse(entries)})
}

// RecomputeLeaderboard rebuilds the contest's leaderboard from current metrics.
func (h *BrandHandler) RecomputeLeaderboard(c *gin.Context) {
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	result, err := h.leaderboardService.RecomputeLeaderboard(c.Request.Context(), contestID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to recompute leaderboard.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContestReport returns the engagement/economics report for a contest.
func (h *BrandHandler) GetContestReport(c *gin.Context) {
	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	report, err := h.analyticsService.GetContestReport(c.Request.Context(), brandID, contestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrContestAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to build contest report.")
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// GenerateBannerUpload returns a presigned PUT URL for the contest banner.
func (h *BrandHandler) GenerateBannerUpload(c *gin.Context) {
	var req BannerUploadRequest
	// Body is optional; the content type defaults to image/jpeg
	_ = c.ShouldBindJSON(&req)

	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}
	contestID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	uploadURL, err := h.contestService.GenerateBannerUploadURL(c.Request.Context(), brandID, contestID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrContestAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}

	c.JSON(http.StatusOK, BannerUploadResponse{UploadURL: uploadURL})
}

// ApproveSubmission marks a pending submission as approved.
func (h *BrandHandler) ApproveSubmission(c *gin.Context) {
	h.moderateSubmission(c, domain.SubmissionApproved)
}

// RejectSubmission marks a pending submission as rejected.
func (h *BrandHandler) RejectSubmission(c *gin.Context) {
	h.moderateSubmission(c, domain.SubmissionRejected)
}

func (h *BrandHandler) moderateSubmission(c *gin.Context, status domain.SubmissionStatus) {
	brandID, ok := brandIDFromContext(c)
	if !ok {
		return
	}
	submissionID, ok := objectIDFromParam(c, "id")
	if !ok {
		return
	}

	var submission *domain.Submission
	var err error
	if status == domain.SubmissionApproved {
		submission, err = h.submissionService.ApproveSubmission(c.Request.Context(), brandID, submissionID)
	} else {
		submission, err = h.submissionService.RejectSubmission(c.Request.Context(), brandID, submissionID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound), errors.Is(err, service.ErrContestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSubmissionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSubmissionNotPending):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to moderate submission.")
		}
		return
	}

	c.JSON(http.StatusOK, MapSubmissionToResponse(submission))
}

// --- shared parameter helpers ---

// brandIDFromContext extracts the authenticated user's ID as an ObjectID,
// aborting the request on failure.
func brandIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	return userIDFromContext(c)
}

func userIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func objectIDFromParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" parameter.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func objectIDFromHex(c *gin.Context, hex, field string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+field+" value.")
		return primitive.NilObjectID, false
	}
	return id, true
}
