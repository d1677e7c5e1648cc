package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"umastagram/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要检查 Origin
		return true
	},
}

const onlineKeyTTL = 60 * time.Second

// Client WebSocket 客户端
type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub

	mu     sync.Mutex
	closed bool // Send channel 是否已关闭
}

// Hub WebSocket 连接管理中心：只做通知推送
type Hub struct {
	// 在线用户 map[userID]map[clientID]*Client（支持多设备）
	Clients map[uuid.UUID]map[uuid.UUID]*Client
	mu      sync.RWMutex

	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		Clients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		rdb:     rdb,
	}
}

// Register 注册客户端
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.Clients[client.UserID] == nil {
		h.Clients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.Clients[client.UserID][client.ID] = client
	h.mu.Unlock()

	// 在线状态写 Redis，供其他实例/服务查询
	if h.rdb != nil {
		if err := h.rdb.Set(context.Background(), "online:"+client.UserID.String(), 1, onlineKeyTTL).Err(); err != nil {
			log.Printf("[ERROR] Failed to set online status for %s: %v", client.UserID, err)
		}
	}

	log.Printf("User %s connected (client %s)", client.UserID, client.ID)
}

// Unregister 注销客户端
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	lastDevice := false
	if clients, ok := h.Clients[client.UserID]; ok {
		delete(clients, client.ID)
		if len(clients) == 0 {
			delete(h.Clients, client.UserID)
			lastDevice = true
		}
	}
	h.mu.Unlock()

	client.mu.Lock()
	if !client.closed {
		client.closed = true
		close(client.Send)
	}
	client.mu.Unlock()

	if lastDevice && h.rdb != nil {
		if err := h.rdb.Del(context.Background(), "online:"+client.UserID.String()).Err(); err != nil {
			log.Printf("[ERROR] Failed to clear online status for %s: %v", client.UserID, err)
		}
	}
}

// IsUserOnline 检查用户是否有活跃连接
func (h *Hub) IsUserOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients[userID]) > 0
}

// SendNotification 向用户的所有在线设备推送通知
func (h *Hub) SendNotification(userID uuid.UUID, notification interface{}) bool {
	payload, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal notification: %v", err)
		return false
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.Clients[userID]))
	for _, client := range h.Clients[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	sent := false
	for _, client := range clients {
		select {
		case client.Send <- payload:
			sent = true
		default:
			// 发送缓冲已满，丢弃这条推送
		}
	}
	return sent
}

// HandleWebSocket WebSocket 入口（token query 参数认证）
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := middleware.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ERROR] WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 16),
			Hub:    hub,
		}

		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}

// writePump 把 Send channel 的消息写到连接
func (c *Client) writePump() {
	defer c.Conn.Close()

	for payload := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readPump 只消费 ping/close，通知通道是单向下行
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
