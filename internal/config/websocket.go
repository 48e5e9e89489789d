package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	WriteTimeout time.Duration
	PongTimeout  time.Duration
}

func (ws WebSocket) PingPeriod() time.Duration {
	return ws.PongTimeout * 9 / 10
}

func NewWebSocket() *WebSocket {
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ReadLimit:    4096,
		WriteTimeout: 10 * time.Second,
		PongTimeout:  60 * time.Second,
	}
}
