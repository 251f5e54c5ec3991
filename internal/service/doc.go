// Package service contains the notification eligibility engine.
//
// The engine decides, per incoming webhook event, whether a chat
// notification goes out and what it contains:
// - movies: dedup against the ledger, trailer lookup, single send
// - seasons: dedup, series-overview fallback, poster-fallback retry
// - episodes: dedup plus two time-window gates, poster-fallback retry
//
// Every outcome (delivered, suppressed with reason, or error) maps to a
// short human-readable text for the webhook response; nothing is silent.
package service
