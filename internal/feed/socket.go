package feed

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 2 * time.Second
	frameReadTimeout = 5 * time.Second
)

// Socket reads frames pushed by a device bridge over a WebSocket connection.
type Socket struct {
	conn *websocket.Conn
}

// DialSocket connects to the bridge at the given ws:// or wss:// URL.
func DialSocket(rawURL string) (*Socket, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	d := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := d.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial feed: %w", err)
	}
	return &Socket{conn: conn}, nil
}

// Next blocks for the next frame. A stalled bridge surfaces as a read
// deadline error rather than hanging the sampling loop forever.
func (s *Socket) Next() (Frame, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(frameReadTimeout)); err != nil {
		return Frame{}, err
	}
	var f Frame
	if err := s.conn.ReadJSON(&f); err != nil {
		return Frame{}, fmt.Errorf("failed to read frame: %w", err)
	}
	return f, nil
}

// Close closes the connection.
func (s *Socket) Close() error {
	return s.conn.Close()
}
