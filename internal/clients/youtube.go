package clients

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/amaumene/jellygram/internal/domain"
)

const watchURLFormat = "https://www.youtube.com/watch?v=%s"

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// YouTubeClient searches the YouTube Data API for trailers. It implements
// domain.TrailerSearcher. With an empty API key every search reports
// domain.ErrTrailerNotFound, so notifications simply go out without a
// trailer link.
type YouTubeClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewYouTubeClient(apiURL, apiKey string, httpClient *http.Client) *YouTubeClient {
	return &YouTubeClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// SearchTrailer returns the watch URL of the top search hit. An empty
// result set or a hit without a video ID maps to domain.ErrTrailerNotFound;
// anything else non-2xx is a hard error for the caller to propagate.
func (c *YouTubeClient) SearchTrailer(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: trailer search disabled", domain.ErrTrailerNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/search", nil)
	if err != nil {
		return "", fmt.Errorf("building trailer search request: %w", err)
	}

	params := req.URL.Query()
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", "1")
	params.Set("key", c.apiKey)
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("searching trailer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("searching trailer: unexpected status %d", resp.StatusCode)
	}

	var payload youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding trailer search response: %w", err)
	}

	if len(payload.Items) == 0 || payload.Items[0].ID.VideoID == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrTrailerNotFound, query)
	}
	return fmt.Sprintf(watchURLFormat, payload.Items[0].ID.VideoID), nil
}
