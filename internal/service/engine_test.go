package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amaumene/jellygram/internal/config"
	"github.com/amaumene/jellygram/internal/domain"
	"github.com/amaumene/jellygram/internal/ledger"
)

type fakeEnricher struct {
	items map[string]*domain.ItemDetails
	calls int
}

func (f *fakeEnricher) ItemDetails(ctx context.Context, itemID string) (*domain.ItemDetails, error) {
	f.calls++
	details, ok := f.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return details, nil
}

type fakeTrailers struct {
	url   string
	err   error
	calls int
}

func (f *fakeTrailers) SearchTrailer(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.url, f.err
}

type sentPhoto struct {
	imageItemID string
	caption     string
}

type fakeSender struct {
	// responses are consumed per call; when exhausted, sends succeed.
	responses []bool
	err       error
	sent      []sentPhoto
}

func (f *fakeSender) SendPhoto(ctx context.Context, imageItemID, caption string) (bool, error) {
	f.sent = append(f.sent, sentPhoto{imageItemID: imageItemID, caption: caption})
	if f.err != nil {
		return false, f.err
	}
	if len(f.responses) == 0 {
		return true, nil
	}
	ok := f.responses[0]
	f.responses = f.responses[1:]
	return ok, nil
}

type engineFixture struct {
	engine   *Engine
	ledger   *ledger.Ledger
	enricher *fakeEnricher
	trailers *fakeTrailers
	sender   *fakeSender
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	cfg := &config.Config{
		JellyfinBaseURL:            "http://test-jellyfin.com",
		EpisodePremieredWithinDays: 7,
		SeasonAddedWithinDays:      3,
		NotifiedMaxEntries:         100,
	}

	f := &engineFixture{
		ledger:   ledger.Load(filepath.Join(t.TempDir(), "notified_items.json"), cfg.NotifiedMaxEntries),
		enricher: &fakeEnricher{items: map[string]*domain.ItemDetails{}},
		trailers: &fakeTrailers{err: domain.ErrTrailerNotFound},
		sender:   &fakeSender{},
	}
	f.engine = NewEngine(cfg, f.ledger, f.enricher, f.trailers, f.sender)
	return f
}

func movieEvent() *domain.WebhookEvent {
	return &domain.WebhookEvent{
		ItemType: "Movie",
		Name:     "Test Movie",
		Year:     2023,
		ItemID:   "movie123",
		Overview: "A great test movie",
		RunTime:  "02:00:00",
	}
}

func seasonEvent() *domain.WebhookEvent {
	return &domain.WebhookEvent{
		ItemType:   "Season",
		Name:       "Season 1",
		Year:       2023,
		ItemID:     "season123",
		SeriesName: "Test Series",
		Overview:   "First season",
	}
}

func episodeEvent() *domain.WebhookEvent {
	return &domain.WebhookEvent{
		ItemType:      "Episode",
		Name:          "Test Episode",
		Year:          2023,
		ItemID:        "episode123",
		SeriesName:    "Test Series",
		SeasonNumber:  "01",
		EpisodeNumber: "01",
		Overview:      "A test episode",
		PremiereDate:  time.Now().Format(time.RFC3339Nano),
	}
}

func isoDaysAgo(days int) string {
	return time.Now().Add(-time.Duration(days) * 24 * time.Hour).Format(time.RFC3339Nano)
}

func (f *engineFixture) wireEpisode(premiereDaysAgo, seasonCreatedDaysAgo int) {
	f.enricher.items["episode123"] = &domain.ItemDetails{
		SeasonID:     "season123",
		PremiereDate: isoDaysAgo(premiereDaysAgo),
	}
	f.enricher.items["season123"] = &domain.ItemDetails{
		SeriesID:    "series123",
		DateCreated: isoDaysAgo(seasonCreatedDaysAgo),
	}
}

func TestMovieDedup(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first, err := f.engine.Process(ctx, movieEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !first.Delivered || first.Message != "Movie notification was sent to telegram" {
		t.Errorf("first = %+v, want delivered", first)
	}

	second, err := f.engine.Process(ctx, movieEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if second.Delivered {
		t.Error("second event delivered, want suppressed")
	}
	if len(f.sender.sent) != 1 {
		t.Errorf("sends = %d, want 1", len(f.sender.sent))
	}
}

func TestMovieTitleCleanup(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	event := movieEvent()
	event.Name = "Test Movie (2023)"

	if _, err := f.engine.Process(ctx, event); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	caption := f.sender.sent[0].caption
	if !strings.Contains(caption, "*Test Movie*") {
		t.Errorf("caption missing cleaned title: %q", caption)
	}
	if !strings.Contains(caption, "*(2023)*") {
		t.Errorf("caption missing year: %q", caption)
	}
	if strings.Contains(caption, "Test Movie (2023)") {
		t.Errorf("caption still carries embedded year: %q", caption)
	}

	// The ledger key uses the cleaned name, so the plain-named event is a
	// duplicate.
	result, err := f.engine.Process(ctx, movieEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Delivered {
		t.Error("plain-named duplicate delivered, want suppressed")
	}
}

func TestMovieCaptionContents(t *testing.T) {
	f := newEngineFixture(t)
	f.trailers.url = "https://www.youtube.com/watch?v=trailer"
	f.trailers.err = nil

	if _, err := f.engine.Process(context.Background(), movieEvent()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	caption := f.sender.sent[0].caption
	for _, want := range []string{
		"*🍿New Movie Added🍿*",
		"*Test Movie*",
		"*(2023)*",
		"A great test movie",
		"02:00:00",
		"Trailer",
		"https://www.youtube.com/watch?v=trailer",
		"Watch Now",
		"http://test-jellyfin.com/web/index.html#!/details?id=movie123",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing %q:\n%s", want, caption)
		}
	}
}

func TestMovieWithoutTrailer(t *testing.T) {
	f := newEngineFixture(t)
	f.trailers.err = domain.ErrTrailerNotFound

	result, err := f.engine.Process(context.Background(), movieEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.Delivered {
		t.Error("want delivered without trailer")
	}
	if strings.Contains(f.sender.sent[0].caption, "Trailer") {
		t.Errorf("caption has trailer line without a trailer: %q", f.sender.sent[0].caption)
	}
}

func TestMovieTrailerHardErrorPropagates(t *testing.T) {
	f := newEngineFixture(t)
	f.trailers.err = errors.New("API Error")

	_, err := f.engine.Process(context.Background(), movieEvent())
	if err == nil || !strings.Contains(err.Error(), "API Error") {
		t.Fatalf("error = %v, want propagated API Error", err)
	}
	if len(f.sender.sent) != 0 {
		t.Error("notification sent despite trailer hard error")
	}
	if f.ledger.Contains("Movie", "Test Movie", 2023) {
		t.Error("movie marked notified despite failure")
	}
}

func TestMovieDispatchRejectedNotMarked(t *testing.T) {
	f := newEngineFixture(t)
	f.sender.responses = []bool{false}

	_, err := f.engine.Process(context.Background(), movieEvent())
	if !errors.Is(err, domain.ErrDispatchRejected) {
		t.Fatalf("error = %v, want domain.ErrDispatchRejected", err)
	}
	if f.ledger.Contains("Movie", "Test Movie", 2023) {
		t.Error("movie marked notified despite rejected dispatch")
	}
}

func TestSeasonDelivered(t *testing.T) {
	f := newEngineFixture(t)
	f.enricher.items["season123"] = &domain.ItemDetails{SeriesID: "series123", Overview: "Test overview"}

	result, err := f.engine.Process(context.Background(), seasonEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Message != "Season notification was sent to telegram" {
		t.Errorf("message = %q", result.Message)
	}
	if !f.ledger.Contains("Season", "Season 1", 2023) {
		t.Error("season not marked notified")
	}
}

func TestSeasonOverviewFallback(t *testing.T) {
	f := newEngineFixture(t)
	f.enricher.items["season123"] = &domain.ItemDetails{SeriesID: "series123", Overview: "Test overview"}

	event := seasonEvent()
	event.Overview = ""

	if _, err := f.engine.Process(context.Background(), event); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	caption := f.sender.sent[0].caption
	if !strings.Contains(caption, "Test overview") {
		t.Errorf("caption missing series overview fallback: %q", caption)
	}
	if !strings.Contains(caption, "http://test-jellyfin.com/web/index.html#!/details?id=season123") {
		t.Errorf("caption missing permalink: %q", caption)
	}
}

func TestSeasonImageFallback(t *testing.T) {
	f := newEngineFixture(t)
	f.enricher.items["season123"] = &domain.ItemDetails{SeriesID: "series123"}
	f.sender.responses = []bool{false, true}

	result, err := f.engine.Process(context.Background(), seasonEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.Delivered {
		t.Error("want delivered after fallback")
	}

	if len(f.sender.sent) != 2 {
		t.Fatalf("sends = %d, want 2", len(f.sender.sent))
	}
	if f.sender.sent[0].imageItemID != "season123" {
		t.Errorf("first poster = %q, want season123", f.sender.sent[0].imageItemID)
	}
	if f.sender.sent[1].imageItemID != "series123" {
		t.Errorf("fallback poster = %q, want series123", f.sender.sent[1].imageItemID)
	}
}

func TestSeasonImageFallbackFailsOnce(t *testing.T) {
	f := newEngineFixture(t)
	f.enricher.items["season123"] = &domain.ItemDetails{SeriesID: "series123"}
	f.sender.responses = []bool{false, false}

	_, err := f.engine.Process(context.Background(), seasonEvent())
	if !errors.Is(err, domain.ErrDispatchRejected) {
		t.Fatalf("error = %v, want domain.ErrDispatchRejected", err)
	}
	if len(f.sender.sent) != 2 {
		t.Errorf("sends = %d, want exactly 2 (no third retry)", len(f.sender.sent))
	}
	if f.ledger.Contains("Season", "Season 1", 2023) {
		t.Error("season marked notified despite failed dispatch")
	}
}

func TestEpisodeDelivered(t *testing.T) {
	f := newEngineFixture(t)
	f.wireEpisode(0, 10)

	result, err := f.engine.Process(context.Background(), episodeEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Message != "Notification sent to Telegram!" {
		t.Errorf("message = %q", result.Message)
	}

	caption := f.sender.sent[0].caption
	for _, want := range []string{
		"Test Series",
		"S01E01",
		"Test Episode",
		"http://test-jellyfin.com/web/index.html#!/details?id=episode123",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing %q:\n%s", want, caption)
		}
	}
	if !f.ledger.Contains("Episode", "Test Episode", 2023) {
		t.Error("episode not marked notified")
	}
}

func TestEpisodeSuppressedWhenSeasonRecentlyAdded(t *testing.T) {
	f := newEngineFixture(t)
	f.wireEpisode(0, 1)

	result, err := f.engine.Process(context.Background(), episodeEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Delivered {
		t.Error("want suppressed for recently added season")
	}
	if !strings.Contains(result.Message, "was added within the last") {
		t.Errorf("message = %q, want season-added wording", result.Message)
	}
	if len(f.sender.sent) != 0 {
		t.Error("notification sent despite suppression")
	}
}

func TestEpisodeSuppressedWhenPremiereTooOld(t *testing.T) {
	f := newEngineFixture(t)
	f.wireEpisode(30, 60)

	result, err := f.engine.Process(context.Background(), episodeEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Delivered {
		t.Error("want suppressed for old premiere")
	}
	if !strings.Contains(result.Message, "was added more than") {
		t.Errorf("message = %q, want historical 'added more than' wording", result.Message)
	}
	if len(f.sender.sent) != 0 {
		t.Error("notification sent despite suppression")
	}
}

func TestEpisodeImageFallback(t *testing.T) {
	f := newEngineFixture(t)
	f.wireEpisode(0, 10)
	f.sender.responses = []bool{false, true}

	result, err := f.engine.Process(context.Background(), episodeEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.Delivered {
		t.Error("want delivered after fallback")
	}
	if len(f.sender.sent) != 2 {
		t.Fatalf("sends = %d, want 2", len(f.sender.sent))
	}
	if f.sender.sent[1].imageItemID != "series123" {
		t.Errorf("fallback poster = %q, want series123", f.sender.sent[1].imageItemID)
	}
}

func TestEpisodeInvalidSeasonTimestamp(t *testing.T) {
	f := newEngineFixture(t)
	f.enricher.items["episode123"] = &domain.ItemDetails{SeasonID: "season123", PremiereDate: isoDaysAgo(0)}
	f.enricher.items["season123"] = &domain.ItemDetails{SeriesID: "series123", DateCreated: "garbage"}

	_, err := f.engine.Process(context.Background(), episodeEvent())
	if !errors.Is(err, domain.ErrInvalidTimestamp) {
		t.Fatalf("error = %v, want domain.ErrInvalidTimestamp", err)
	}
	if len(f.sender.sent) != 0 {
		t.Error("notification sent despite undeterminable window")
	}
}

func TestUnsupportedItemType(t *testing.T) {
	f := newEngineFixture(t)

	result, err := f.engine.Process(context.Background(), &domain.WebhookEvent{
		ItemType: "UnsupportedType",
		Name:     "Test Item",
		Year:     2023,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Delivered || result.Message != "Item type not supported" {
		t.Errorf("result = %+v, want suppressed with unsupported message", result)
	}

	if f.enricher.calls != 0 || f.trailers.calls != 0 || len(f.sender.sent) != 0 {
		t.Error("collaborators touched for unsupported item type")
	}
	if f.ledger.Len() != 0 {
		t.Error("ledger touched for unsupported item type")
	}
}
