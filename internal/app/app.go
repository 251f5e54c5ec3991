package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/clients"
	"github.com/amaumene/jellygram/internal/config"
	"github.com/amaumene/jellygram/internal/handler"
	"github.com/amaumene/jellygram/internal/ledger"
	"github.com/amaumene/jellygram/internal/service"
)

const (
	telegramAPIURL = "https://api.telegram.org"
	youtubeAPIURL  = "https://www.googleapis.com/youtube/v3"
)

type App struct {
	cfg    *config.Config
	server *http.Server
	ledger *ledger.Ledger
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	app := &App{
		cfg:    cfg,
		ledger: ledger.Load(cfg.NotifiedItemsPath(), cfg.NotifiedMaxEntries),
	}
	app.wireServices()
	return app, nil
}

func (a *App) wireServices() {
	httpClient := clients.NewHTTPClient(a.cfg.RequestTimeout, a.cfg.MaxRetries, a.cfg.RetryBackoff)
	imageClient := clients.NewHTTPClient(a.cfg.ImageDownloadTimeout, a.cfg.MaxRetries, a.cfg.RetryBackoff)

	jellyfin := clients.NewJellyfinClient(a.cfg.JellyfinBaseURL, a.cfg.JellyfinAPIKey, httpClient, imageClient)
	youtube := clients.NewYouTubeClient(youtubeAPIURL, a.cfg.YouTubeAPIKey, httpClient)
	telegram := clients.NewTelegramClient(telegramAPIURL, a.cfg.TelegramBotToken, a.cfg.TelegramChatID, jellyfin, httpClient)

	engine := service.NewEngine(a.cfg, a.ledger, jellyfin, youtube, telegram)

	a.server = &http.Server{
		Addr:    a.cfg.ServerPort,
		Handler: handler.NewRouter(engine),
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.startServer()

	return a.waitForShutdown(ctx, cancel)
}

func (a *App) startServer() {
	log.WithFields(log.Fields{
		"component": "server",
		"address":   a.cfg.ServerPort,
	}).Info("http server listening")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Fatal("http server failed to start")
	}
}

func (a *App) waitForShutdown(ctx context.Context, cancel context.CancelFunc) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		log.WithField("reason", "context_cancelled").Info("initiating graceful shutdown")
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("received shutdown signal")
	}

	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info("graceful shutdown started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Error("http server shutdown failed")
	}

	if err := a.ledger.Save(); err != nil {
		log.WithFields(log.Fields{
			"component": "ledger",
			"error":     err,
		}).Error("ledger flush failed")
		return err
	}

	log.Info("graceful shutdown completed")
	return nil
}
