package api

import (
	"net/http"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type LeaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	Pagination  Pagination                `json:"pagination"`
}

// GetLeaderboard is public: GET /api/leaderboard?page&limit.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.leaderboardService.Leaderboard(c.Request.Context(), skipFor(page, limit), limit)
	if err != nil {
		log.Errorf("leaderboard: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Leaderboard: result.Entries,
		Pagination:  newPagination(page, limit, result.Total),
	})
}
