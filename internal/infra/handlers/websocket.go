package handlers

import (
	"fmt"
	"net/http"

	"intellialert/internal/infra/logger"
	"intellialert/internal/infra/realtime"

	"github.com/gorilla/websocket"
)

type WebsocketHandlers struct {
	Logger   *logger.Logger
	Registry *realtime.Registry
	Upgrader websocket.Upgrader
}

func NewWebsocketHandlers(logger *logger.Logger, registry *realtime.Registry) *WebsocketHandlers {
	return &WebsocketHandlers{
		Logger:   logger,
		Registry: registry,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and keeps the dashboard registered until it disconnects. Inbound
// text is only logged.
func (th *WebsocketHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := th.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Error upgrading connection: %v", err))
		return
	}

	client, err := th.Registry.Connect(conn)
	if err != nil {
		th.Logger.Warn(fmt.Sprintf("Rejected websocket client: %v", err))
		return
	}

	client.ReadPump(func(data []byte) {
		th.Logger.Info(fmt.Sprintf("Received message: %s", data))
	})
}
