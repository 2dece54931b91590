// Package cmd provides command implementations for xgserver.
// It includes the StartWeb function which builds the HTTP server from the
// initialized page service and runs it until the context is cancelled.
package cmd

import (
	"context"
	"os"
	"strings"

	httpserver "github.com/OliveiraNt/xgserver/internal/adapters/http"
	"github.com/OliveiraNt/xgserver/internal/application"
	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/OliveiraNt/xgserver/internal/utils"
)

// ListenAddr returns the listen address, letting XGSERVER_HTTP_PORT override the configured port.
func ListenAddr(cfg config.FileConfig) string {
	port := strings.TrimSpace(os.Getenv("XGSERVER_HTTP_PORT"))
	if port == "" {
		port = cfg.Server.Port
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// StartWeb starts the HTTP server using already-initialized application and repository layers.
func StartWeb(ctx context.Context, cfg config.FileConfig, pageService *application.PageService) {
	server, err := httpserver.New(pageService, cfg)
	if err != nil {
		utils.Logger.Fatal("HTTP server setup failed", "err", err)
	}
	addr := ListenAddr(cfg)
	utils.Logger.Info("HTTP server starting", "addr", addr, "public_html", cfg.Server.PublicDir)
	if err := server.Run(ctx, addr); err != nil {
		utils.Logger.Fatal("HTTP server terminated", "err", err)
	}
	utils.Logger.Info("HTTP server stopped")
}
