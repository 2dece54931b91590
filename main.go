package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/OliveiraNt/xgserver/cmd"
	"github.com/OliveiraNt/xgserver/internal/adapters/http/ui"
	"github.com/OliveiraNt/xgserver/internal/application"
	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/OliveiraNt/xgserver/internal/core"
	"github.com/OliveiraNt/xgserver/internal/infrastructure/repository"
	"github.com/OliveiraNt/xgserver/internal/utils"
	"github.com/joho/godotenv"
)

func findConfigPath() string {
	names := []string{"config.yml", "config.yaml"}
	candidates := []string{}

	for _, n := range names {
		candidates = append(candidates, "./"+n)
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			for _, n := range names {
				candidates = append(candidates, filepath.Join(appdata, "xgserver", n))
			}
		}
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			for _, n := range names {
				candidates = append(candidates, filepath.Join(xdg, "xgserver", n))
			}
		}
		if home != "" {
			for _, n := range names {
				candidates = append(candidates, filepath.Join(home, ".config", "xgserver", n))
			}
		}
		for _, n := range names {
			candidates = append(candidates, filepath.Join("/etc", "xgserver", n))
		}
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	createPath := "./config.yml"
	if err := config.WriteConfig(createPath, config.Default()); err == nil {
		return createPath
	}
	return candidates[0]
}

func main() {
	_ = godotenv.Load()
	utils.InitLogger()

	configPath := os.Getenv("XGSERVER_CONFIG")
	if configPath == "" {
		configPath = findConfigPath()
	}

	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		utils.Logger.Warn("failed to load config file, using defaults", "path", configPath, "err", err)
		cfg = config.Default()
	} else {
		utils.Logger.Info("configuration loaded", "path", configPath)
	}

	if err := config.InitI18n(cfg.Lang); err != nil {
		utils.Logger.Fatal("failed to load locales", "err", err)
	}

	repo := repository.NewPageRepository(cfg.Server.PrivateDir, ui.Templates())
	defer repo.Close()
	if err := repo.Load(); err != nil {
		utils.Logger.Fatal("failed to load template pages", "err", err)
	}
	if err := repo.Watch(); err != nil {
		utils.Logger.Error("failed to start template watcher", "err", err)
	}

	pageService := application.NewPageService(repo, core.NewStaticPage(), cfg)
	utils.Logger.Info("application layer initialized", "pages", len(pageService.ListPages()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.StartWeb(ctx, cfg, pageService)
}
