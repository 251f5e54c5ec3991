package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"

	"github.com/amaumene/jellygram/internal/domain"
)

const enrichmentFields = "DateCreated,PremiereDate,Overview"

type jellyfinItem struct {
	ID           string `json:"Id"`
	SeriesID     string `json:"SeriesId"`
	SeasonID     string `json:"SeasonId"`
	DateCreated  string `json:"DateCreated"`
	PremiereDate string `json:"PremiereDate"`
	Overview     string `json:"Overview"`
}

type jellyfinItemsResponse struct {
	Items []jellyfinItem `json:"Items"`
}

// JellyfinClient fetches item details and poster images from the media
// server. It implements domain.Enricher and domain.ImageSource.
type JellyfinClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	imageClient *http.Client
}

// NewJellyfinClient creates a Jellyfin adapter. imageClient carries the
// longer image-download timeout.
func NewJellyfinClient(baseURL, apiKey string, httpClient, imageClient *http.Client) *JellyfinClient {
	return &JellyfinClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  httpClient,
		imageClient: imageClient,
	}
}

// ItemDetails looks up one item by ID. A response with no items maps to
// domain.ErrItemNotFound.
func (c *JellyfinClient) ItemDetails(ctx context.Context, itemID string) (*domain.ItemDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/Items?Ids=%s", c.baseURL, url.QueryEscape(itemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building item details request: %w", err)
	}

	query := req.URL.Query()
	query.Set("api_key", c.apiKey)
	query.Set("Fields", enrichmentFields)
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching item details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching item details: unexpected status %d", resp.StatusCode)
	}

	var payload jellyfinItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding item details: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	item := payload.Items[0]
	return &domain.ItemDetails{
		ID:           item.ID,
		SeriesID:     item.SeriesID,
		SeasonID:     item.SeasonID,
		DateCreated:  item.DateCreated,
		PremiereDate: item.PremiereDate,
		Overview:     item.Overview,
	}, nil
}

// PrimaryImage downloads the item's primary poster.
func (c *JellyfinClient) PrimaryImage(ctx context.Context, itemID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/Items/%s/Images/Primary", c.baseURL, url.PathEscape(itemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building image request: %w", err)
	}

	query := req.URL.Query()
	query.Set("api_key", c.apiKey)
	req.URL.RawQuery = query.Encode()

	resp, err := c.imageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}
	return data, nil
}
