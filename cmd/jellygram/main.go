package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/app"

	_ "github.com/amaumene/jellygram/docs"
)

// @title        Jellyfin Telegram Notifier API
// @version      1.0
// @description  Receives Jellyfin library webhooks and relays new-item notifications to a Telegram chat.
// @BasePath     /
func main() {
	if err := godotenv.Load(); err != nil {
		log.WithField("error", err).Debug("no .env file loaded")
	}

	application, err := app.New()
	if err != nil {
		log.WithField("error", err).Fatal("failed to initialize application")
	}

	if err := application.Run(context.Background()); err != nil {
		log.WithField("error", err).Fatal("application exited with error")
	}
}
