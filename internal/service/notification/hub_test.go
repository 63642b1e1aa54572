package notification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(h *Hub, userID string, buffer int) *Client {
	return &Client{hub: h, userID: userID, send: make(chan []byte, buffer)}
}

func TestPushDeliversToRegisteredClient(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "7", 4)
	h.register(c)

	h.Push("7", []byte("hello"))
	assert.Equal(t, []byte("hello"), <-c.send)
}

func TestPushToOfflineUserIsDropped(t *testing.T) {
	h := NewHub()
	h.Push("nobody", []byte("hello"))
}

func TestPushDropsSlowClient(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "7", 1)
	h.register(c)

	h.Push("7", []byte("a"))
	// 缓冲已满，第二条触发断开
	h.Push("7", []byte("b"))

	h.mu.RLock()
	_, ok := h.clients["7"]
	h.mu.RUnlock()
	assert.False(t, ok)

	// 已入缓冲的消息仍可读出，之后通道关闭
	assert.Equal(t, []byte("a"), <-c.send)
	_, open := <-c.send
	assert.False(t, open)
}

func TestRegisterReplacesStaleConnection(t *testing.T) {
	h := NewHub()
	stale := newTestClient(h, "7", 4)
	h.register(stale)
	fresh := newTestClient(h, "7", 4)
	h.register(fresh)

	_, open := <-stale.send
	assert.False(t, open)

	h.Push("7", []byte("x"))
	assert.Equal(t, []byte("x"), <-fresh.send)
}

func TestPushDuringReconnectStorm(t *testing.T) {
	// 推送与重连/注销并发交错时，发送端绝不能碰到已关闭的通道
	h := NewHub()
	const userID = "42"

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					h.Push(userID, []byte("ping"))
				}
			}
		}()
	}

	for i := 0; i < 100000; i++ {
		c := newTestClient(h, userID, 1)
		h.register(c)
		if i%2 == 0 {
			h.remove(c)
		}
	}
	close(done)
	wg.Wait()
}
