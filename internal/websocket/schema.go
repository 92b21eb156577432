package websocket

import "github.com/esatlab/insight-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionMark     Action = "mark"
	ActionFinalize Action = "finalize"
	ActionPing     Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// MarkRequest is sent by the client as each question is marked.
type MarkRequest struct {
	Action Action             `json:"action"`
	Answer model.AnswerUpdate `json:"answer"`
}

// FinalizeRequest is sent by the client to complete the session.
type FinalizeRequest struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventMarked    Event = "marked"
	EventFinalized Event = "finalized"
	EventPong      Event = "pong"
)

// MarkedResponse echoes the derived correctness and the session's
// running accuracy after one marked answer.
type MarkedResponse struct {
	Event           Event   `json:"event"`
	Index           int     `json:"index"`
	Correctness     string  `json:"correctness"`
	RunningAccuracy float64 `json:"running_accuracy"`
}

// FinalizedResponse carries the completed session's headline numbers.
// The full report stays on the REST endpoint.
type FinalizedResponse struct {
	Event       Event    `json:"event"`
	RawCorrect  int      `json:"raw_correct"`
	Total       int      `json:"total"`
	ScaledTotal *float64 `json:"scaled_total,omitempty"`
	Percentile  *float64 `json:"percentile,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
