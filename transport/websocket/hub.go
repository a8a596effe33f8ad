package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wordrace/wordrace/game/manager"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// GameDispatcher is the inbound surface the hub routes participant
// commands to. The session manager implements it.
type GameDispatcher interface {
	Connect(participantID string)
	CreateSession(participantID, category, difficulty string) error
	JoinSession(participantID string) error
	SubmitWord(participantID, word string) error
	Leave(participantID string)
}

// Envelope frames every message on the wire.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type createSessionPayload struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type submitWordPayload struct {
	Word string `json:"word"`
}

// Client is one connected participant.
type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	participantID string
}

// Hub maintains the set of connected participants and delivers events.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // keyed by participant ID

	game GameDispatcher
}

// NewHub creates an empty hub. Bind must be called before serving.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Bind attaches the game dispatcher. Split from NewHub because the
// manager needs the hub as its Notifier.
func (h *Hub) Bind(game GameDispatcher) {
	h.game = game
}

// ServeWS upgrades an HTTP request to a participant connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:           h,
		conn:          conn,
		send:          make(chan []byte, 256),
		participantID: uuid.NewString(),
	}

	h.mu.Lock()
	h.clients[client.participantID] = client
	h.mu.Unlock()

	log.Info().
		Str("participant_id", client.participantID).
		Str("remote", r.RemoteAddr).
		Msg("participant connected")

	go client.writePump()
	go client.readPump()

	h.game.Connect(client.participantID)
}

// ClientCount returns the number of connected participants.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ToParticipant implements manager.Notifier.
func (h *Hub) ToParticipant(participantID string, event manager.Event) {
	data, ok := encode(event)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client := h.clients[participantID]; client != nil {
		client.deliver(data)
	}
}

// ToParticipants implements manager.Notifier.
func (h *Hub) ToParticipants(participantIDs []string, event manager.Event) {
	data, ok := encode(event)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range participantIDs {
		if client := h.clients[id]; client != nil {
			client.deliver(data)
		}
	}
}

// Broadcast implements manager.Notifier.
func (h *Hub) Broadcast(event manager.Event) {
	data, ok := encode(event)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		client.deliver(data)
	}
}

// encode wraps an event in its wire envelope.
func encode(event manager.Event) ([]byte, bool) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.EventType()).Msg("failed to marshal event")
		return nil, false
	}
	data, err := json.Marshal(Envelope{Type: event.EventType(), Data: payload})
	if err != nil {
		log.Error().Err(err).Str("type", event.EventType()).Msg("failed to marshal envelope")
		return nil, false
	}
	return data, true
}

// deliver queues a message without blocking. A slow consumer loses the
// message; the read pump tears the connection down when it actually dies.
func (c *Client) deliver(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Warn().Str("participant_id", c.participantID).Msg("send buffer full, dropping message")
	}
}

// unregister removes a client after its connection closes.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if current, ok := h.clients[client.participantID]; ok && current == client {
		delete(h.clients, client.participantID)
		close(client.send)
	}
	h.mu.Unlock()

	log.Info().Str("participant_id", client.participantID).Msg("participant disconnected")
}

// readPump decodes inbound envelopes and dispatches them to the game.
// Connection closure, however it happens, becomes the participant's leave.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.hub.game.Leave(c.participantID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("participant_id", c.participantID).Msg("websocket read error")
			}
			return
		}
		c.dispatch(data)
	}
}

// dispatch routes one inbound envelope. Game errors go back to the sender
// as error_message events; they never close the connection.
func (c *Client) dispatch(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.sendError("malformed message")
		return
	}

	var err error
	switch env.Type {
	case "create_session":
		var p createSessionPayload
		if jsonErr := json.Unmarshal(env.Data, &p); jsonErr != nil {
			c.sendError("malformed create_session payload")
			return
		}
		err = c.hub.game.CreateSession(c.participantID, p.Category, p.Difficulty)

	case "join_session":
		err = c.hub.game.JoinSession(c.participantID)

	case "submit_word":
		var p submitWordPayload
		if jsonErr := json.Unmarshal(env.Data, &p); jsonErr != nil {
			c.sendError("malformed submit_word payload")
			return
		}
		err = c.hub.game.SubmitWord(c.participantID, p.Word)

	default:
		c.sendError("unknown message type: " + env.Type)
		return
	}

	if err != nil {
		c.sendError(err.Error())
	}
}

// sendError delivers an error_message event to this participant only.
func (c *Client) sendError(text string) {
	if data, ok := encode(manager.ErrorMessage{Text: text}); ok {
		c.deliver(data)
	}
}

// writePump delivers queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
