package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/domain"
)

const (
	msgMovieSent            = "Movie notification was sent to telegram"
	msgMovieAlreadyNotified = "Movie was already notified"
)

// Some webhook payloads embed the year in the title, e.g. "Foo (2023)".
var yearSuffixPattern = regexp.MustCompile(`\s*\(\d{4}\)$`)

func cleanMovieName(name string) string {
	return yearSuffixPattern.ReplaceAllString(name, "")
}

func (e *Engine) processMovie(ctx context.Context, event *domain.WebhookEvent) (*domain.Result, error) {
	name := cleanMovieName(event.Name)

	if e.ledger.Contains(domain.ItemTypeMovie, name, event.Year) {
		log.WithFields(log.Fields{
			"name": name,
			"year": event.Year,
		}).Info("movie already notified, skipping")
		return suppressed(msgMovieAlreadyNotified), nil
	}

	trailerURL, err := e.trailers.SearchTrailer(ctx, fmt.Sprintf("%s Trailer %d", name, event.Year))
	if errors.Is(err, domain.ErrTrailerNotFound) {
		trailerURL = ""
	} else if err != nil {
		return nil, fmt.Errorf("searching trailer: %w", err)
	}

	caption := renderMovieCaption(name, event.Year, event.Overview, event.RunTime, trailerURL,
		permalink(e.cfg.JellyfinBaseURL, event.ItemID))

	ok, err := e.sender.SendPhoto(ctx, event.ItemID, caption)
	if err != nil {
		return nil, fmt.Errorf("sending movie notification: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("sending movie notification: %w", domain.ErrDispatchRejected)
	}

	if err := e.ledger.Mark(ctx, domain.ItemTypeMovie, name, event.Year); err != nil {
		return nil, fmt.Errorf("marking movie notified: %w", err)
	}

	log.WithFields(log.Fields{
		"name": name,
		"year": event.Year,
	}).Info("movie notification sent")
	return delivered(msgMovieSent), nil
}
