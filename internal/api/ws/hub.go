package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/fikadu-bingo/bingo-server/internal/game"
	"github.com/fikadu-bingo/bingo-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// client is one websocket connection bound to a logical user. A user may
// hold any number of clients at once (tabs, reconnects).
type client struct {
	id       string
	userID   string
	username string

	conn   *websocket.Conn
	connMu sync.Mutex

	stakes map[int]struct{}
}

func (c *client) send(action string, data interface{}) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn.WriteJSON(envelope{Action: action, Data: data})
}

// Hub owns the transport side: it tracks which connections subscribe to
// which stake tier and which connections belong to which user, and routes
// inbound events to the right room. It implements room.Broadcaster and
// settlement.Notifier.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[int]map[*client]struct{}
	byConn   map[string]*client
	sessions *store.SessionStore
	registry GameRegistry
}

func NewHub(registry GameRegistry, sessions *store.SessionStore) *Hub {
	return &Hub{
		rooms:    map[int]map[*client]struct{}{},
		byConn:   map[string]*client{},
		sessions: sessions,
		registry: registry,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // auth happens upstream; the engine trusts the gateway
	},
}

// HandleWS upgrades the connection and pumps inbound events until the
// client goes away. Going away is an implicit leave for every room the
// connection joined.
func (h *Hub) HandleWS(c *gin.Context) {
	userID := c.Query("user_id")
	username := c.Query("username")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	cl := &client{
		id:       uuid.NewString(),
		userID:   userID,
		username: username,
		conn:     conn,
		stakes:   map[int]struct{}{},
	}

	h.mu.Lock()
	h.byConn[cl.id] = cl
	h.mu.Unlock()
	h.sessions.Add(userID, cl.id)
	log.Printf("ws: user %s connected (%s)", userID, cl.id)

	defer h.drop(cl)

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(cl, msg.Action, msg.Data)
	}
}

func (h *Hub) dispatch(cl *client, action string, data json.RawMessage) {
	switch action {
	case "join":
		var req struct {
			Stake int `json:"stake"`
		}
		if err := json.Unmarshal(data, &req); err != nil || req.Stake == 0 {
			_ = cl.send("error", gin.H{"message": "stake required"})
			return
		}
		r, ok := h.registry.Get(req.Stake)
		if !ok {
			_ = cl.send("error", gin.H{"message": "unknown stake tier"})
			return
		}
		h.subscribe(cl, req.Stake)
		reply := r.Join(cl.userID, cl.username, cl.id)
		_ = cl.send("ticketAssigned", reply)

	case "leave":
		var req struct {
			Stake int `json:"stake"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		r, ok := h.registry.Get(req.Stake)
		if !ok {
			return
		}
		h.unsubscribe(cl, req.Stake)
		r.Leave(cl.userID, cl.id)

	case "claimWin":
		var req struct {
			Stake  int         `json:"stake"`
			Ticket game.Ticket `json:"ticket"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			_ = cl.send("winRejected", gin.H{"reason": "malformed claim"})
			return
		}
		r, ok := h.registry.Get(req.Stake)
		if !ok {
			_ = cl.send("winRejected", gin.H{"reason": "unknown stake tier"})
			return
		}
		if err := r.Claim(cl.userID, req.Ticket); err != nil {
			_ = cl.send("winRejected", gin.H{"reason": err.Error()})
		}

	case "markNumber":
		var req struct {
			Stake  int `json:"stake"`
			Number int `json:"number"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		if r, ok := h.registry.Get(req.Stake); ok {
			r.Mark(cl.userID, req.Number)
		}

	default:
		log.Printf("ws: unknown action %q from user %s", action, cl.userID)
	}
}

func (h *Hub) subscribe(cl *client, stake int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[stake]; !ok {
		h.rooms[stake] = map[*client]struct{}{}
	}
	h.rooms[stake][cl] = struct{}{}
	cl.stakes[stake] = struct{}{}
}

func (h *Hub) unsubscribe(cl *client, stake int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.rooms[stake]; ok {
		delete(subs, cl)
	}
	delete(cl.stakes, stake)
}

// drop tears a connection down: transport bookkeeping first, then an
// implicit leave for every room the connection was part of.
func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	delete(h.byConn, cl.id)
	stakes := make([]int, 0, len(cl.stakes))
	for stake := range cl.stakes {
		stakes = append(stakes, stake)
		if subs, ok := h.rooms[stake]; ok {
			delete(subs, cl)
		}
	}
	h.mu.Unlock()

	h.sessions.Remove(cl.userID, cl.id)
	for _, stake := range stakes {
		if r, ok := h.registry.Get(stake); ok {
			r.Leave(cl.userID, cl.id)
		}
	}
	_ = cl.conn.Close()
	log.Printf("ws: user %s disconnected (%s)", cl.userID, cl.id)
}

// ToRoom sends an event to every connection subscribed to a stake tier.
func (h *Hub) ToRoom(stake int, action string, data interface{}) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.rooms[stake]))
	for cl := range h.rooms[stake] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		if err := cl.send(action, data); err != nil {
			log.Printf("ws: send to %s failed: %v", cl.id, err)
		}
	}
}

// ToUser sends an event to every live connection of one user and no one
// else; balance updates must never leak room-wide.
func (h *Hub) ToUser(userID string, action string, data interface{}) {
	ids := h.sessions.Connections(userID)
	h.mu.RLock()
	targets := make([]*client, 0, len(ids))
	for _, id := range ids {
		if cl, ok := h.byConn[id]; ok {
			targets = append(targets, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		if err := cl.send(action, data); err != nil {
			log.Printf("ws: send to %s failed: %v", cl.id, err)
		}
	}
}
