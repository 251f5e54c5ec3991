package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/domain"
)

const (
	msgSeasonSent            = "Season notification was sent to telegram"
	msgSeasonAlreadyNotified = "Season was already notified"
)

func (e *Engine) processSeason(ctx context.Context, event *domain.WebhookEvent) (*domain.Result, error) {
	if e.ledger.Contains(domain.ItemTypeSeason, event.Name, event.Year) {
		log.WithFields(log.Fields{
			"series": event.SeriesName,
			"season": event.Name,
		}).Info("season already notified, skipping")
		return suppressed(msgSeasonAlreadyNotified), nil
	}

	details, err := e.enricher.ItemDetails(ctx, event.ItemID)
	if err != nil {
		return nil, fmt.Errorf("fetching season details: %w", err)
	}

	// Seasons often ship without their own synopsis.
	overview := event.Overview
	if overview == "" {
		overview = details.Overview
	}

	caption := renderSeasonCaption(event.SeriesName, event.Name, event.Year, overview,
		permalink(e.cfg.JellyfinBaseURL, event.ItemID))

	if err := e.deliverWithFallback(ctx, event.ItemID, details.SeriesID, caption); err != nil {
		return nil, err
	}

	if err := e.ledger.Mark(ctx, domain.ItemTypeSeason, event.Name, event.Year); err != nil {
		return nil, fmt.Errorf("marking season notified: %w", err)
	}

	log.WithFields(log.Fields{
		"series": event.SeriesName,
		"season": event.Name,
	}).Info("season notification sent")
	return delivered(msgSeasonSent), nil
}
