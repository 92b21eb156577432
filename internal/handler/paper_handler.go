package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/response"
	"github.com/esatlab/insight-backend/internal/service"
	"github.com/esatlab/insight-backend/internal/validator"
)

// PaperHandler handles paper browsing and table administration.
type PaperHandler struct {
	paperService *service.PaperService
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// List godoc
// GET /api/v1/papers?exam=ESAT
// Lists an exam's papers.
func (h *PaperHandler) List(c *gin.Context) {
	exam := c.Query("exam")
	if exam == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	papers, err := h.paperService.ListByExam(c.Request.Context(), exam)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"papers": papers})
}

// Get godoc
// GET /api/v1/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.paperService.GetByID(c.Request.Context(), paperID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Create godoc
// POST /api/v1/admin/papers
// Registers a new paper.
func (h *PaperHandler) Create(c *gin.Context) {
	var req model.CreatePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, err := h.paperService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrSiblingNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"paper": paper})
}

// Delete godoc
// DELETE /api/v1/admin/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.paperService.Delete(c.Request.Context(), paperID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetConversionTable godoc
// GET /api/v1/papers/:id/conversion
func (h *PaperHandler) GetConversionTable(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	rows, err := h.paperService.GetConversionTable(c.Request.Context(), paperID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rows": rows})
}

// ReplaceConversionTable godoc
// PUT /api/v1/admin/papers/:id/conversion
// Replaces a paper's conversion table wholesale.
func (h *PaperHandler) ReplaceConversionTable(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReplaceConversionTableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.paperService.ReplaceConversionTable(c.Request.Context(), paperID, &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rows": len(req.Rows)})
}

// GetPercentileTable godoc
// GET /api/v1/tables/:exam/:section
// Returns the distribution table for an exam/section key. Use "overall"
// as the section for the whole-paper table.
func (h *PaperHandler) GetPercentileTable(c *gin.Context) {
	rows, err := h.paperService.GetPercentileTable(c.Request.Context(), c.Param("exam"), c.Param("section"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rows": rows})
}

// ReplacePercentileTable godoc
// PUT /api/v1/admin/tables/:exam/:section
// Replaces a distribution table wholesale.
func (h *PaperHandler) ReplacePercentileTable(c *gin.Context) {
	var req model.ReplacePercentileTableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.paperService.ReplacePercentileTable(c.Request.Context(), c.Param("exam"), c.Param("section"), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rows": len(req.Rows)})
}
