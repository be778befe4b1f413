package api

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CreatorHandler holds the services a creator account interacts with.
type CreatorHandler struct {
	contestService    service.ContestService
	submissionService service.SubmissionService
	cashoutService    service.CashoutService
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(
	contestService service.ContestService,
	submissionService service.SubmissionService,
	cashoutService service.CashoutService,
) *CreatorHandler {
	return &CreatorHandler{
		contestService:    contestService,
		submissionService: submissionService,
		cashoutService:    cashoutService,
	}
}

// --- DTOs ---

type CreateSubmissionRequest struct {
	ContestID string     `json:"contestId" binding:"required"`
	VideoURL  string     `json:"videoUrl" binding:"required,url"`
	PostedAt  *time.Time `json:"postedAt"`
}

type SubmissionResponse struct {
	ID        string                  `json:"id"`
	ContestID string                  `json:"contestId"`
	CreatorID string                  `json:"creatorId"`
	Network   domain.Network          `json:"network"`
	VideoURL  string                  `json:"videoUrl"`
	Status    domain.SubmissionStatus `json:"status"`
	PostedAt  time.Time               `json:"postedAt"`
	CreatedAt time.Time               `json:"createdAt"`
}

type CreateCashoutRequest struct {
	GrossCents int64 `json:"grossCents" binding:"required,gt=0"`
}

type CashoutResponse struct {
	ID               string               `json:"id"`
	GrossCents       int64                `json:"grossCents"`
	PlatformFeeCents int64                `json:"platformFeeCents"`
	NetCents         int64                `json:"netCents"`
	Status           domain.CashoutStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// MapSubmissionToResponse converts a domain.Submission to its DTO.
func MapSubmissionToResponse(submission *domain.Submission) SubmissionResponse {
	if submission == nil {
		return SubmissionResponse{}
	}
	return SubmissionResponse{
		ID:        submission.ID.Hex(),
		ContestID: submission.ContestID.Hex(),
		CreatorID: submission.CreatorID.Hex(),
		Network:   submission.Network,
		VideoURL:  submission.VideoURL,
		Status:    submission.Status,
		PostedAt:  submission.PostedAt,
		CreatedAt: submission.CreatedAt,
	}
}

// MapSubmissionsToResponse converts a slice of submissions to DTOs.
func MapSubmissionsToResponse(submissions []domain.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, len(submissions))
	for i, submission := range submissions {
		responses[i] = MapSubmissionToResponse(&submission)
	}
	return responses
}

// MapCashoutToResponse converts a domain.Cashout to its DTO.
func MapCashoutToResponse(cashout *domain.Cashout) CashoutResponse {
	if cashout == nil {
		return CashoutResponse{}
	}
	return CashoutResponse{
		ID:               cashout.ID.Hex(),
		GrossCents:       cashout.GrossCents,
		PlatformFeeCents: cashout.PlatformFeeCents,
		NetCents:         cashout.NetCents,
		Status:           cashout.Status,
		CreatedAt:        cashout.CreatedAt,
	}
}

// --- Handler Methods ---

// ListActiveContests returns the contests open for submissions.
// Available to any authenticated role.
func (h *CreatorHandler) ListActiveContests(c *gin.Context) {
	contests, err := h.contestService.GetActiveContests(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve contests.")
		return
	}

	if contests == nil {
		c.JSON(http.StatusOK, []ContestResponse{})
		return
	}
	c.JSON(http.StatusOK, MapContestsToResponse(contests))
}

// CreateSubmission enters the creator's video link into a contest.
func (h *CreatorHandler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	creatorID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	contestID, ok := objectIDFromHex(c, req.ContestID, "contestId")
	if !ok {
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), creatorID, contestID, req.VideoURL, req.PostedAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedVideoURL):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrContestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create submission.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSubmissionToResponse(submission))
}

// GetMySubmissions lists the creator's submissions across contests.
func (h *CreatorHandler) GetMySubmissions(c *gin.Context) {
	creatorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.GetSubmissionsByCreator(c.Request.Context(), creatorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve submissions.")
		return
	}

	if submissions == nil {
		c.JSON(http.StatusOK, []SubmissionResponse{})
		return
	}
	c.JSON(http.StatusOK, MapSubmissionsToResponse(submissions))
}

// RequestCashout records a pending withdrawal for the creator.
func (h *CreatorHandler) RequestCashout(c *gin.Context) {
	var req CreateCashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	creatorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	cashout, err := h.cashoutService.RequestCashout(c.Request.Context(), creatorID, req.GrossCents)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCashoutAmount) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create cashout request.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCashoutToResponse(cashout))
}

// GetMyCashouts lists the creator's cashout history.
func (h *CreatorHandler) GetMyCashouts(c *gin.Context) {
	creatorID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	cashouts, err := h.cashoutService.GetCashoutsByCreator(c.Request.Context(), creatorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve cashouts.")
		return
	}

	responses := make([]CashoutResponse, len(cashouts))
	for i, cashout := range cashouts {
		responses[i] = MapCashoutToResponse(&cashout)
	}
	c.JSON(http.StatusOK, responses)
}
