package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/config"
	"github.com/amaumene/jellygram/internal/domain"
	"github.com/amaumene/jellygram/internal/ledger"
)

const msgUnsupportedType = "Item type not supported"

// Engine applies the per-type eligibility rules and drives dispatch.
type Engine struct {
	cfg      *config.Config
	ledger   *ledger.Ledger
	enricher domain.Enricher
	trailers domain.TrailerSearcher
	sender   domain.PhotoSender
}

func NewEngine(cfg *config.Config, l *ledger.Ledger, enricher domain.Enricher, trailers domain.TrailerSearcher, sender domain.PhotoSender) *Engine {
	return &Engine{
		cfg:      cfg,
		ledger:   l,
		enricher: enricher,
		trailers: trailers,
		sender:   sender,
	}
}

// Process handles one webhook event. Suppressions are normal outcomes
// returned in the Result; only collaborator failures and persistence
// failures come back as errors.
func (e *Engine) Process(ctx context.Context, event *domain.WebhookEvent) (*domain.Result, error) {
	switch event.ItemType {
	case domain.ItemTypeMovie:
		return e.processMovie(ctx, event)
	case domain.ItemTypeSeason:
		return e.processSeason(ctx, event)
	case domain.ItemTypeEpisode:
		return e.processEpisode(ctx, event)
	default:
		log.WithField("itemType", event.ItemType).Debug("ignoring unsupported item type")
		return &domain.Result{Message: msgUnsupportedType}, nil
	}
}

func suppressed(message string) *domain.Result {
	return &domain.Result{Delivered: false, Message: message}
}

func delivered(message string) *domain.Result {
	return &domain.Result{Delivered: true, Message: message}
}

// deliverWithFallback attempts the send with the item's own poster, then
// exactly once more with the series poster when the chat service rejects
// the first attempt. A second rejection is surfaced, not retried again.
func (e *Engine) deliverWithFallback(ctx context.Context, primaryImageID, seriesImageID, caption string) error {
	ok, err := e.sender.SendPhoto(ctx, primaryImageID, caption)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	if ok {
		return nil
	}

	log.WithFields(log.Fields{
		"itemId":   primaryImageID,
		"seriesId": seriesImageID,
	}).Warn("primary poster rejected, retrying with series poster")

	ok, err = e.sender.SendPhoto(ctx, seriesImageID, caption)
	if err != nil {
		return fmt.Errorf("sending notification with series poster: %w", err)
	}
	if !ok {
		return fmt.Errorf("sending notification with series poster: %w", domain.ErrDispatchRejected)
	}
	return nil
}
