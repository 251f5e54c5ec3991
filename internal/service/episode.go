package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/domain"
	"github.com/amaumene/jellygram/internal/timewindow"
)

const (
	msgEpisodeSent            = "Notification sent to Telegram!"
	msgEpisodeAlreadyNotified = "Episode was already notified"
)

func (e *Engine) processEpisode(ctx context.Context, event *domain.WebhookEvent) (*domain.Result, error) {
	if e.ledger.Contains(domain.ItemTypeEpisode, event.Name, event.Year) {
		log.WithFields(log.Fields{
			"series":  event.SeriesName,
			"episode": event.Name,
		}).Info("episode already notified, skipping")
		return suppressed(msgEpisodeAlreadyNotified), nil
	}

	episode, err := e.enricher.ItemDetails(ctx, event.ItemID)
	if err != nil {
		return nil, fmt.Errorf("fetching episode details: %w", err)
	}
	season, err := e.enricher.ItemDetails(ctx, episode.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching season details: %w", err)
	}

	// Gate 1: a freshly-added season already produced a season-level
	// notification that covers its episodes.
	seasonSettled, err := timewindow.NotWithinLastDays(season.DateCreated, e.cfg.SeasonAddedWithinDays)
	if err != nil {
		return nil, fmt.Errorf("checking season creation date: %w", err)
	}
	if !seasonSettled {
		log.WithFields(log.Fields{
			"series":      event.SeriesName,
			"episode":     event.Name,
			"dateCreated": season.DateCreated,
		}).Info("season recently added, skipping episode notification")
		return suppressed(fmt.Sprintf("Season was added within the last %d days, skipping episode notification",
			e.cfg.SeasonAddedWithinDays)), nil
	}

	// Gate 2: only recently premiered episodes are worth announcing.
	premiereDate := episode.PremiereDate
	if premiereDate == "" {
		premiereDate = event.PremiereDate
	}
	recentPremiere, err := timewindow.WithinLastDays(premiereDate, e.cfg.EpisodePremieredWithinDays)
	if err != nil {
		return nil, fmt.Errorf("checking premiere date: %w", err)
	}
	if !recentPremiere {
		log.WithFields(log.Fields{
			"series":       event.SeriesName,
			"episode":      event.Name,
			"premiereDate": premiereDate,
		}).Info("episode premiered too long ago, skipping notification")
		// Historical wording says "added" here rather than "premiered".
		return suppressed(fmt.Sprintf("Episode was added more than %d days ago, skipping notification",
			e.cfg.EpisodePremieredWithinDays)), nil
	}

	caption := renderEpisodeCaption(event.SeriesName, event.SeasonNumber, event.EpisodeNumber,
		event.Name, event.Overview, permalink(e.cfg.JellyfinBaseURL, event.ItemID))

	if err := e.deliverWithFallback(ctx, event.ItemID, season.SeriesID, caption); err != nil {
		return nil, err
	}

	if err := e.ledger.Mark(ctx, domain.ItemTypeEpisode, event.Name, event.Year); err != nil {
		return nil, fmt.Errorf("marking episode notified: %w", err)
	}

	log.WithFields(log.Fields{
		"series":  event.SeriesName,
		"episode": event.Name,
	}).Info("episode notification sent")
	return delivered(msgEpisodeSent), nil
}
