package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/esatlab/insight-backend/internal/middleware"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/response"
	"github.com/esatlab/insight-backend/internal/service"
	"github.com/esatlab/insight-backend/internal/validator"
)

// RoadmapHandler handles study roadmap endpoints.
type RoadmapHandler struct {
	roadmapService *service.RoadmapService
}

// NewRoadmapHandler creates a new RoadmapHandler.
func NewRoadmapHandler(roadmapService *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService}
}

// View godoc
// GET /api/v1/roadmap
// Returns the student's roadmap with completion counts.
func (h *RoadmapHandler) View(c *gin.Context) {
	claims := middleware.GetClaims(c)

	view, err := h.roadmapService.View(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roadmap": view})
}

// Completion godoc
// GET /api/v1/roadmap/completion
// Lightweight completion counter for the dashboard widget.
func (h *RoadmapHandler) Completion(c *gin.Context) {
	claims := middleware.GetClaims(c)

	completed, total, err := h.roadmapService.Completion(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"completed_count": completed,
		"total_count":     total,
	})
}

// AddStep godoc
// POST /api/v1/roadmap/steps
func (h *RoadmapHandler) AddStep(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateRoadmapStepRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	step, err := h.roadmapService.AddStep(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"step": step})
}

// ToggleStep godoc
// POST /api/v1/roadmap/steps/:id/toggle
// Flips a step's completion state.
func (h *RoadmapHandler) ToggleStep(c *gin.Context) {
	claims := middleware.GetClaims(c)

	stepID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	completed, err := h.roadmapService.ToggleStep(c.Request.Context(), claims.UserID, stepID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"completed": completed})
}

// DeleteStep godoc
// DELETE /api/v1/roadmap/steps/:id
func (h *RoadmapHandler) DeleteStep(c *gin.Context) {
	claims := middleware.GetClaims(c)

	stepID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.roadmapService.DeleteStep(c.Request.Context(), claims.UserID, stepID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
