package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/Umidjon1990/Shartnoma/internal/config"
	"github.com/Umidjon1990/Shartnoma/internal/notify"
	"github.com/Umidjon1990/Shartnoma/internal/render"
	"github.com/Umidjon1990/Shartnoma/internal/render/browser"
	"github.com/Umidjon1990/Shartnoma/internal/render/slicer"
	"github.com/Umidjon1990/Shartnoma/internal/storage"
	"github.com/Umidjon1990/Shartnoma/internal/template"
	"github.com/Umidjon1990/Shartnoma/internal/web"
)

const appName = "shartnoma"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Configuration file path")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[ERROR] loading configuration: %v", err)
	}

	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	var store storage.Store
	if cfg.Database.URL != "" {
		pg, err := storage.NewPostgresStore(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("[ERROR] connecting to database: %v", err)
		}
		cleanups = append(cleanups, pg.Close)
		store = pg
	} else {
		log.Printf("[INFO] no database configured, using in-memory store")
		store = storage.NewMemoryStore()
	}

	templates := template.NewStore()

	chromeOpts := browser.DefaultOptions(cfg.Server.BaseURL)
	chromeOpts.ExecPath = cfg.Renderer.ChromeExecPath
	chrome := browser.New(chromeOpts)
	cleanups = append(cleanups, chrome.Close)

	var renderer render.Renderer
	switch cfg.Renderer.Strategy {
	case config.RendererSlicer:
		renderer = slicer.New(chrome.Screenshot, templates)
	default:
		renderer = chrome
	}
	log.Printf("[INFO] rendering with the %s strategy", cfg.Renderer.Strategy)

	var notifier notify.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	handlers := &web.Handlers{
		Store:     store,
		Templates: templates,
		Renderer:  renderer,
		Notifier:  notifier,
	}
	router := web.NewRouter(web.WrapperFunc(web.Recover))
	handlers.Register(router)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := web.RunWithGracefulShutdown(server, appName, cleanup, 15*time.Second); err != nil {
		log.Fatalf("[ERROR] server terminated: %v", err)
	}
}
