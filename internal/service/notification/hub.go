// internal/service/notification/hub.go
package notification

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"storefront/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 网关前面有反向代理做来源控制，这里放开跨域
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 维护所有活跃的 WebSocket 连接，按 userID 定向推送通知。
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // key 为 userID
}

// NewHub 创建一个新的连接中心。
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Push 将一条消息推送给指定用户。用户不在线时静默丢弃：
// 通知是尽力而为的，不做离线补偿。
// 发送必须在读锁内完成：close(send) 只发生在写锁内，
// 持有读锁期间通道不可能被关闭。
func (h *Hub) Push(userID string, payload []byte) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	select {
	case client.send <- payload:
		h.mu.RUnlock()
	default:
		// 发送缓冲已满，说明客户端读取过慢，断开让其重连
		h.mu.RUnlock()
		h.remove(client)
	}
}

// ServeWS 将一个 HTTP 请求升级为 WebSocket 连接并注册到 Hub。
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logger().Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256), userID: userID}
	h.register(client)
	logger.Logger().Info().Str("user_id", userID).Msg("websocket client connected")

	go client.writePump()
	go client.readPump()
}

// register 登记一个连接。同一用户重复连接时，旧连接被替换。
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.userID]; ok {
		close(old.send)
	}
	h.clients[client.userID] = client
	h.mu.Unlock()
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if current, ok := h.clients[client.userID]; ok && current == client {
		delete(h.clients, client.userID)
		close(client.send)
	}
	h.mu.Unlock()
}

// Client 代表一个已注册的 WebSocket 连接。
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// writePump 将 send 通道中的消息写入连接，并维持心跳。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// readPump 消费客户端消息（只处理心跳），连接断开时注销。
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
