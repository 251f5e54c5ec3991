package domain

// Item types carried by Jellyfin webhook payloads. Anything else is
// unsupported and never notified.
const (
	ItemTypeMovie   = "Movie"
	ItemTypeSeason  = "Season"
	ItemTypeEpisode = "Episode"
)

// WebhookEvent is one incoming "item added" payload. It is transient and
// scoped to a single request.
type WebhookEvent struct {
	ItemType      string `json:"ItemType"`
	Name          string `json:"Name"`
	Year          int    `json:"Year"`
	ItemID        string `json:"ItemId"`
	Overview      string `json:"Overview"`
	RunTime       string `json:"RunTime"`
	SeriesName    string `json:"SeriesName"`
	SeasonNumber  string `json:"SeasonNumber00"`
	EpisodeNumber string `json:"EpisodeNumber00"`
	PremiereDate  string `json:"PremiereDate"`
}

// ItemDetails is the enrichment record fetched from the media server for a
// single item. Fetched fresh per request, never cached.
type ItemDetails struct {
	ID           string
	SeriesID     string
	SeasonID     string
	DateCreated  string
	PremiereDate string
	Overview     string
}

// Result is the outcome of processing one webhook event. Message is the
// short human-readable text returned to the webhook caller for every
// outcome, delivered or suppressed.
type Result struct {
	Delivered bool
	Message   string
}
