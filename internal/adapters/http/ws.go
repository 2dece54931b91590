package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

var wsUpgrader = websocket.Upgrader{
	// live reload is a development aid served to same-origin pages
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadEvent is sent to browsers when a template page changes.
type reloadEvent struct {
	Type string `json:"type"`
	Page string `json:"page"`
}

// wsReload upgrades to WebSocket and pushes a reloadEvent for every changed
// template page until the client disconnects.
func (s *Server) wsReload(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.pageService.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.Logger.Debug("websocket client disconnected", "err", err)
				return
			}
		}
	}()

	utils.Logger.Info("live reload client connected", "remote", r.RemoteAddr)
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(reloadEvent{Type: "reload", Page: name}); err != nil {
				utils.Logger.Info("websocket write failed, stopping feed", "page", name, "err", err)
				return
			}
		}
	}
}
