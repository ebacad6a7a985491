package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one WebSocket subscriber. The server pushes notification
// frames; inbound frames are read only to service pings and detect
// disconnects.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	closed sync.Once
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range s.cfg.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 16),
	}

	s.mu.Lock()
	s.clients[client] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()

	websocketClients.Set(float64(count))
	s.logger.Debugw("WebSocket client connected", "clients", count)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		client.writePump()
	}()
	go func() {
		defer s.wg.Done()
		client.readPump()
		s.removeClient(client)
	}()
}

func (s *Server) removeClient(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		client.close()
	}
	count := len(s.clients)
	s.mu.Unlock()

	websocketClients.Set(float64(count))
	s.logger.Debugw("WebSocket client disconnected", "clients", count)
}

// broadcastGraphRefresh notifies every connected client that the data
// changed and the graph should be re-fetched. Slow clients are dropped
// rather than blocking the broadcast.
func (s *Server) broadcastGraphRefresh() {
	message := []byte(`{"type":"graph_refresh"}`)

	s.mu.RLock()
	stale := make([]*Client, 0)
	for client := range s.clients {
		select {
		case client.send <- message:
		default:
			stale = append(stale, client)
		}
	}
	count := len(s.clients)
	s.mu.RUnlock()

	for _, client := range stale {
		s.removeClient(client)
	}

	broadcastsTotal.Inc()
	s.logger.Infow("Broadcast graph refresh", "clients", count)
}

func (c *Client) close() {
	c.closed.Do(func() {
		close(c.send)
	})
}

func (c *Client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
