package api

import (
	"cliprace/backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricsHandler exposes the (mock) metrics refresh trigger.
type MetricsHandler struct {
	metricsService service.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

type RefreshMetricsRequest struct {
	ContestID string `json:"contestId" binding:"omitempty"`
}

type RefreshMetricsResponse struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

// RefreshMetrics regenerates today's snapshot for every approved submission,
// optionally scoped to a single contest.
func (h *MetricsHandler) RefreshMetrics(c *gin.Context) {
	var req RefreshMetricsRequest
	// Body is optional; an empty body means "refresh everything"
	_ = c.ShouldBindJSON(&req)

	var contestID *primitive.ObjectID
	if req.ContestID != "" {
		id, ok := objectIDFromHex(c, req.ContestID, "contestId")
		if !ok {
			return
		}
		contestID = &id
	}

	updated, err := h.metricsService.RefreshApproved(c.Request.Context(), contestID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to refresh metrics.")
		return
	}

	c.JSON(http.StatusOK, RefreshMetricsResponse{OK: true, Updated: updated})
}
