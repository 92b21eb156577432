package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/esatlab/insight-backend/internal/middleware"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/response"
	"github.com/esatlab/insight-backend/internal/service"
	"github.com/esatlab/insight-backend/internal/validator"
)

// SessionHandler handles practice session endpoints.
type SessionHandler struct {
	sessionService *service.SessionService
	reportService  *service.ReportService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService, reportService *service.ReportService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		reportService:  reportService,
	}
}

// Create godoc
// POST /api/v1/sessions
// Starts a new practice session against a paper.
func (h *SessionHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": session})
}

// List godoc
// GET /api/v1/sessions?page=1&per_page=20
// Lists the student's practice sessions, newest first.
func (h *SessionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	sessions, total, err := h.sessionService.List(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"sessions": sessions}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	})
}

// Get godoc
// GET /api/v1/sessions/:id
// Returns one of the student's sessions.
func (h *SessionHandler) Get(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// SaveAnswers godoc
// PUT /api/v1/sessions/:id/answers
// Bulk-autosaves marked answers for an in-progress session.
func (h *SessionHandler) SaveAnswers(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req model.SaveAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.sessionService.SaveAnswers(c.Request.Context(), session, req.Answers); err != nil {
		if errors.Is(err, service.ErrSessionCompleted) {
			response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": len(req.Answers)})
}

// GetReport godoc
// GET /api/v1/sessions/:id/report
// Returns the derived report for a session, cached or recomputed.
func (h *SessionHandler) GetReport(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), session)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// Finalize godoc
// POST /api/v1/sessions/:id/finalize
// Completes a session and returns its final report.
func (h *SessionHandler) Finalize(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	report, err := h.reportService.Finalize(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, service.ErrSessionCompleted) {
			response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session": session,
		"report":  report,
	})
}

// History godoc
// GET /api/v1/sessions/history?limit=50
// Returns the student's smoothed cross-session progress line.
func (h *SessionHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	points, err := h.reportService.History(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"history": points})
}

// ownedSession loads the :id session and enforces ownership, writing the
// error response itself on failure.
func (h *SessionHandler) ownedSession(c *gin.Context) (*model.PracticeSession, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	session, err := h.sessionService.GetOwned(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotSessionOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrNotSessionOwner)
			return nil, false
		}
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return nil, false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}
	return session, true
}
