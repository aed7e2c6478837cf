package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 20 // 1MB
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

// wsConn serializes writes; gorilla allows one concurrent writer.
type wsConn struct {
	c         *websocket.Conn
	mu        sync.Mutex
	closeOnce sync.Once
}

func newWSConn(c *websocket.Conn) *wsConn {
	// Basic timeouts + pong handling (keeps connections healthy)
	c.SetReadLimit(readLimit)
	_ = c.SetReadDeadline(time.Now().Add(readTimeout))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(readTimeout))
	})
	return &wsConn{c: c}
}

func (w *wsConn) Send(b []byte) error {
	return w.write(websocket.TextMessage, b)
}

func (w *wsConn) ping() error {
	return w.write(websocket.PingMessage, nil)
}

func (w *wsConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return w.c.WriteMessage(kind, b)
}

func (w *wsConn) Close() error {
	var err error
	w.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = w.write(websocket.CloseMessage, msg)
		err = w.c.Close()
	})
	return err
}

// pingLoop runs until done closes or a ping fails.
func (w *wsConn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := w.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
