package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/analytics"
	"github.com/esatlab/insight-backend/internal/middleware"
	"github.com/esatlab/insight-backend/internal/model"
	"github.com/esatlab/insight-backend/internal/service"
	ws "github.com/esatlab/insight-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live marking for an in-progress session: each marked
// answer comes back graded with the running accuracy.
type WSHandler struct {
	sessionService *service.SessionService
	reportService  *service.ReportService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessionService *service.SessionService, reportService *service.ReportService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		reportService:  reportService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// SessionMarkingStream godoc
// WS /ws/v1/sessions/:id/stream
// Upgrades to WebSocket for live marking and session completion.
func (h *WSHandler) SessionMarkingStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	session, err := h.sessionService.GetOwned(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "session not accessible"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("student_id", claims.UserID).
		Str("session_id", session.ID.String()).
		Logger()

	wsLog.Info().Msg("Student connected")

	for {
		data, err := ws.ReadRaw(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		var envelope ws.RequestEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			ws.WriteError(conn, "malformed message")
			continue
		}

		switch envelope.Action {
		case ws.ActionMark:
			h.handleMark(conn, wsLog, session, data)
		case ws.ActionFinalize:
			h.handleFinalize(conn, wsLog, session)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(envelope.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(envelope.Action))
		}
	}
}

// handleMark autosaves one answer and replies with its derived
// correctness plus the session's running accuracy.
func (h *WSHandler) handleMark(conn *websocket.Conn, wsLog zerolog.Logger, session *model.PracticeSession, data []byte) {
	ctx := context.Background()

	var req ws.MarkRequest
	if err := json.Unmarshal(data, &req); err != nil {
		ws.WriteError(conn, "malformed mark payload")
		return
	}
	if req.Answer.Index < 0 {
		ws.WriteError(conn, "index must be non-negative")
		return
	}

	if err := h.sessionService.SaveAnswer(ctx, session, req.Answer); err != nil {
		if err == service.ErrSessionCompleted {
			ws.WriteError(conn, "session already completed")
			return
		}
		wsLog.Error().Err(err).Msg("Autosave error")
		ws.WriteError(conn, "save failed")
		return
	}

	records, err := h.sessionService.AnswerLog(ctx, session)
	if err != nil {
		wsLog.Error().Err(err).Msg("Answer log error")
		ws.WriteError(conn, "grading failed")
		return
	}

	correct, gradeable := 0, 0
	for _, g := range analytics.DeriveAll(records) {
		if g != analytics.Unknown {
			gradeable++
		}
		if g == analytics.Correct {
			correct++
		}
	}

	accuracy := 0.0
	if gradeable > 0 {
		accuracy = float64(correct) / float64(gradeable)
	}

	ws.WriteTyped(conn, ws.MarkedResponse{
		Event:           ws.EventMarked,
		Index:           req.Answer.Index,
		Correctness:     analytics.Derive(req.Answer.Record(0)).String(),
		RunningAccuracy: accuracy,
	})
}

// handleFinalize completes the session and replies with the headline
// numbers. The full report stays on the REST endpoint.
func (h *WSHandler) handleFinalize(conn *websocket.Conn, wsLog zerolog.Logger, session *model.PracticeSession) {
	report, err := h.reportService.Finalize(context.Background(), session)
	if err != nil {
		if err == service.ErrSessionCompleted {
			ws.WriteError(conn, "session already completed")
			return
		}
		wsLog.Error().Err(err).Msg("Finalize error")
		ws.WriteError(conn, "finalize failed")
		return
	}

	wsLog.Info().Int("raw_correct", report.RawCorrect).Msg("Session finalized")

	ws.WriteTyped(conn, ws.FinalizedResponse{
		Event:       ws.EventFinalized,
		RawCorrect:  report.RawCorrect,
		Total:       report.TotalQuestions,
		ScaledTotal: report.ScaledTotal,
		Percentile:  report.Percentile,
	})
}
