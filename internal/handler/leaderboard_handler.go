package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/esatlab/insight-backend/internal/middleware"
	"github.com/esatlab/insight-backend/internal/response"
	"github.com/esatlab/insight-backend/internal/service"
)

// LeaderboardHandler handles leaderboard endpoints.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top godoc
// GET /api/v1/leaderboard/:exam?limit=25
// Returns the exam's top-ranked students by best scaled total.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	entries, err := h.leaderboardService.Top(c.Request.Context(), c.Param("exam"), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// Me godoc
// GET /api/v1/leaderboard/:exam/me?radius=2
// Returns the authenticated student's own placement and the entries
// ranked just above and below it.
func (h *LeaderboardHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)

	radius, _ := strconv.Atoi(c.DefaultQuery("radius", "2"))
	if radius < 0 || radius > 10 {
		radius = 2
	}

	entry, nearby, err := h.leaderboardService.Rank(c.Request.Context(), c.Param("exam"), claims.UserID, radius)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if entry == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoRankedScore)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entry":  entry,
		"nearby": nearby,
	})
}
