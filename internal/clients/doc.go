// Package clients provides adapters for external services.
//
// This package contains adapters that implement domain interfaces for:
// - Jellyfin media server (enrichment lookups, poster images)
// - YouTube Data API (trailer search)
// - Telegram Bot API (photo message dispatch)
//
// All adapters share a retrying HTTP client and support context for
// cancellation and timeout handling.
package clients
