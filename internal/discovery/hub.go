// internal/discovery/hub.go

package discovery

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/joinember/ember-backend/internal/common/logger"
	"github.com/joinember/ember-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

// Hub fans realtime discovery events (new matches, unmatches) out to
// connected clients. One connection per user; a second connection replaces
// the first.
type Hub struct {
	clients    map[int64]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID int64
}

type Event struct {
	Type   string      `json:"type"`
	UserID int64       `json:"-"`
	Data   interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			logger.Log.WithField("user_id", client.userID).Debug("websocket connected")

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				logger.Log.WithField("user_id", client.userID).Debug("websocket disconnected")
			}

		case event := <-h.broadcast:
			if client, ok := h.clients[event.UserID]; ok {
				select {
				case client.send <- event:
				default:
					close(client.send)
					delete(h.clients, client.userID)
				}
			}
		}
	}
}

// NotifyMatch pushes the new match to both parties.
func (h *Hub) NotifyMatch(match *Match) {
	event := Event{Type: "new_match", Data: match}

	event.UserID = match.User1ID
	h.broadcast <- event

	event.UserID = match.User2ID
	h.broadcast <- event
}

// NotifyUnmatch tells the other party their match ended.
func (h *Hub) NotifyUnmatch(match *Match, byUserID int64) {
	h.broadcast <- Event{
		Type:   "unmatched",
		UserID: match.OtherUser(byUserID),
		Data:   map[string]int64{"match_id": match.ID},
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan Event, 256),
		userID: userID,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
