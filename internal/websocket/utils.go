package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadRaw reads one message's raw bytes with a read deadline, so the
// caller can peek at the action before full parsing.
func ReadRaw(conn *websocket.Conn) ([]byte, error) {
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	_, data, err := conn.ReadMessage()
	return data, err
}
