package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/service"
)

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the dashboard
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamClient wraps a websocket connection with a write lock. gorilla
// permits only one concurrent writer per connection; all frames go through
// send.
type streamClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *streamClient) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return c.conn.WriteJSON(v)
}

// StreamHandler pushes refreshed profit metrics to connected dashboard
// clients whenever a user's trade collection changes. Implements
// service.Notifier.
type StreamHandler struct {
	statsService *service.StatsService

	mu      sync.RWMutex
	clients map[uint]map[*streamClient]struct{}
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(statsService *service.StatsService) *StreamHandler {
	return &StreamHandler{
		statsService: statsService,
		clients:      make(map[uint]map[*streamClient]struct{}),
	}
}

// Connect upgrades the request to a websocket and registers the client
// GET /api/v1/ws
func (h *StreamHandler) Connect(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Stream] upgrade failed for user %d: %v", userID, err)
		return
	}

	client := &streamClient{conn: conn}
	h.register(userID, client)

	// Send the current snapshot immediately so new clients render without
	// waiting for the next mutation
	h.pushMetrics(userID, client)

	// Reader loop only drains control frames; clients do not send data
	go func() {
		defer h.unregister(userID, client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyTradesChanged implements service.Notifier
func (h *StreamHandler) NotifyTradesChanged(userID uint) {
	h.mu.RLock()
	clients := make([]*streamClient, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.pushMetrics(userID, client)
	}
}

type metricsEvent struct {
	Event   string      `json:"event"`
	Time    time.Time   `json:"time"`
	Metrics interface{} `json:"metrics"`
}

func (h *StreamHandler) pushMetrics(userID uint, client *streamClient) {
	metrics, err := h.statsService.Metrics(userID, time.Now())
	if err != nil {
		log.Printf("[Stream] metrics failed for user %d: %v", userID, err)
		return
	}

	msg := metricsEvent{Event: "metrics", Time: time.Now(), Metrics: metrics}
	if err := client.send(msg); err != nil {
		h.unregister(userID, client)
	}
}

func (h *StreamHandler) register(userID uint, client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*streamClient]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *StreamHandler) unregister(userID uint, client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			client.conn.Close()
		}
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// RegisterRoutes registers the websocket route
func (h *StreamHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rg.GET("/ws", authMiddleware, h.Connect)
}
