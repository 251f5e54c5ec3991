package domain

import "context"

// Enricher fetches item details from the media server. Implementations must
// be idempotent and side-effect-free.
type Enricher interface {
	ItemDetails(ctx context.Context, itemID string) (*ItemDetails, error)
}

// TrailerSearcher looks up a trailer URL for a free-form query. A missing
// trailer is reported as ErrTrailerNotFound so callers can distinguish it
// from a hard lookup failure.
type TrailerSearcher interface {
	SearchTrailer(ctx context.Context, query string) (string, error)
}

// ImageSource provides the primary poster image bytes for an item.
type ImageSource interface {
	PrimaryImage(ctx context.Context, itemID string) ([]byte, error)
}

// PhotoSender dispatches a photo message to the chat. The returned bool
// reports whether the chat service accepted the message, so the caller can
// drive the single poster-fallback retry; a non-nil error means the attempt
// itself failed (network fault, image download failure) and is not
// retryable through the fallback.
type PhotoSender interface {
	SendPhoto(ctx context.Context, imageItemID, caption string) (bool, error)
}
