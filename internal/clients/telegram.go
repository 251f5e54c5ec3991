package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellygram/internal/domain"
)

const parseModeMarkdown = "Markdown"

// TelegramClient dispatches photo messages through the Telegram Bot API.
// It implements domain.PhotoSender: the poster is pulled from the media
// server by item ID and uploaded as a multipart photo with a Markdown
// caption.
type TelegramClient struct {
	apiURL     string
	botToken   string
	chatID     string
	images     domain.ImageSource
	httpClient *http.Client
}

func NewTelegramClient(apiURL, botToken, chatID string, images domain.ImageSource, httpClient *http.Client) *TelegramClient {
	return &TelegramClient{
		apiURL:     apiURL,
		botToken:   botToken,
		chatID:     chatID,
		images:     images,
		httpClient: httpClient,
	}
}

// SendPhoto uploads the item's poster with the caption. The bool reports
// whether Telegram accepted the message; a rejected send (non-2xx) is not
// an error so the caller can retry once with a fallback poster.
func (c *TelegramClient) SendPhoto(ctx context.Context, imageItemID, caption string) (bool, error) {
	photo, err := c.images.PrimaryImage(ctx, imageItemID)
	if err != nil {
		return false, fmt.Errorf("fetching poster: %w", err)
	}

	body, contentType, err := c.buildPhotoForm(photo, caption)
	if err != nil {
		return false, fmt.Errorf("building photo form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendPhoto", c.apiURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return false, fmt.Errorf("building sendPhoto request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("sending photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.WithFields(log.Fields{
			"status": resp.StatusCode,
			"detail": string(detail),
		}).Warn("telegram rejected photo message")
		return false, nil
	}
	return true, nil
}

func (c *TelegramClient) buildPhotoForm(photo []byte, caption string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"chat_id":    c.chatID,
		"caption":    caption,
		"parse_mode": parseModeMarkdown,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("photo", "poster.jpg")
	if err != nil {
		return nil, "", fmt.Errorf("creating photo part: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return nil, "", fmt.Errorf("writing photo part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
