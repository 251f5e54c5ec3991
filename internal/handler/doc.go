// Package handler implements HTTP request handlers.
//
// This package provides HTTP endpoints for:
// - /webhook: Jellyfin "item added" payloads
// - /health: health check endpoint
// - /docs: swagger UI for the API document
//
// The webhook always answers 200 with a short text body describing the
// outcome, including parse errors; operators read the outcome straight
// from the webhook response.
package handler
