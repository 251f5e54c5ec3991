// Package app provides application initialization and lifecycle management.
//
// The App type wires all dependencies together and manages:
// - Configuration loading
// - Notification ledger loading
// - External client construction (Jellyfin, YouTube, Telegram)
// - HTTP server lifecycle
// - Graceful shutdown
package app
