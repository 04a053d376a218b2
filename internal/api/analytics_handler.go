package api

import (
	"errors"
	"net/http"

	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the aggregated views of the caller's workout history.
// Every failure is reported as a plain server error.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetProgress handles GET /api/analytics/progress?exercise=<filter>.
func (h *AnalyticsHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	series, err := h.analyticsService.Progress(c.Request.Context(), userID, c.Query("exercise"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progressData": series})
}

// GetPumpScore recomputes and stores the caller's pump score.
func (h *AnalyticsHandler) GetPumpScore(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	score, err := h.analyticsService.PumpScore(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *AnalyticsHandler) GetPersonalRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	records, err := h.analyticsService.PersonalRecords(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"personalRecords": records})
}

func (h *AnalyticsHandler) Export(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	export, err := h.analyticsService.Export(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, "Export is not available!")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}
	c.JSON(http.StatusCreated, export)
}
