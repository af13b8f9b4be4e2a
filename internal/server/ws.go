package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is served by this same process on localhost.
		return true
	},
}

type MessageType string

const MessageTypeSnapshot MessageType = "snapshot"

// UpdateMessage is the envelope pushed over the WebSocket.
type UpdateMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	total := len(s.clients)
	s.clientsMu.Unlock()
	log.Info("websocket client connected", "total", total)

	s.sendInitialState(conn)

	// Block until the client goes away; inbound messages are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.clientsMu.Lock()
	delete(s.clients, conn)
	total = len(s.clients)
	s.clientsMu.Unlock()
	log.Info("websocket client disconnected", "total", total)
}

func (s *Server) sendInitialState(conn *websocket.Conn) {
	snap := s.snapshot()
	if snap == nil {
		return
	}
	msg := UpdateMessage{Type: string(MessageTypeSnapshot), Data: snap}
	if err := conn.WriteJSON(msg); err != nil {
		log.Error("sending initial state", "err", err)
	}
}

func (s *Server) handleBroadcast() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case msg := <-s.broadcast:
			var dead []*websocket.Conn

			s.clientsMu.RLock()
			for client := range s.clients {
				if err := client.WriteJSON(msg); err != nil {
					log.Error("broadcasting to client", "err", err)
					dead = append(dead, client)
				}
			}
			s.clientsMu.RUnlock()

			if len(dead) > 0 {
				s.clientsMu.Lock()
				for _, client := range dead {
					delete(s.clients, client)
					client.Close()
				}
				s.clientsMu.Unlock()
			}
		}
	}
}

func (s *Server) broadcastUpdate(msgType MessageType, data interface{}) {
	msg := UpdateMessage{Type: string(msgType), Data: data}

	// Non-blocking send: a full channel means clients are far behind and
	// will catch up on the next update.
	select {
	case s.broadcast <- msg:
	default:
		log.Warn("broadcast channel full, dropping message")
	}
}
