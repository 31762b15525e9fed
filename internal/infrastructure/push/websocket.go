package push

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WebsocketViewer adapts one websocket connection to the hub's Viewer
// contract. Writes are serialized because the connection allows only one
// concurrent writer.
type WebsocketViewer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func CreateNewWebsocketViewer(conn *websocket.Conn) *WebsocketViewer {
	return &WebsocketViewer{conn: conn}
}

func (v *WebsocketViewer) Send(payload interface{}) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteJSON(payload)
}

func (v *WebsocketViewer) Close() error {
	return v.conn.Close()
}
